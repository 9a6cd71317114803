package users

import (
	"time"
)

type Role string

const (
	// RoleUser is a ticket holder, identified by phone number.
	RoleUser Role = "USER"
	// RoleAdmin is a venue operator who signs in with a username.
	RoleAdmin Role = "ADMIN"
)

// User is either a patron or an operator. Patrons are created on their
// first booking and have no credentials.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255"`
	Phone     *string   `json:"phone,omitempty" gorm:"uniqueIndex;size:10"`
	Username  *string   `json:"username,omitempty" gorm:"uniqueIndex;size:100"`
	Password  string    `json:"-"` // bcrypt hash, operators only
	Role      Role      `json:"role" gorm:"not null;size:10;default:'USER'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// PhoneNumber returns the patron phone or "".
func (u *User) PhoneNumber() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
