package bookings

import (
	"time"

	"boxoffice/internal/events"
	"boxoffice/internal/users"
	"boxoffice/pkg/api"
)

// Booking is one purchase of Qty tickets in a tier, identified to the
// patron by TicketHash.
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	EventID    uint      `gorm:"index;not null" json:"event_id"`
	TierID     uint      `gorm:"index;not null" json:"tier_id"`
	Qty        int       `gorm:"not null" json:"qty"`
	PricePaid  float64   `gorm:"not null" json:"price_paid"`
	TicketHash string    `gorm:"size:64;uniqueIndex;not null" json:"ticket_hash"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User  *users.User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *events.Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Tier  *events.Tier  `gorm:"foreignKey:TierID" json:"tier,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) phone() string {
	if b.User == nil {
		return ""
	}
	return b.User.PhoneNumber()
}

func (b *Booking) ToResponse(userPhone string) api.Booking {
	return api.Booking{
		ID:         b.ID,
		UserPhone:  userPhone,
		EventID:    b.EventID,
		TierID:     b.TierID,
		Qty:        b.Qty,
		PricePaid:  b.PricePaid,
		TicketHash: b.TicketHash,
	}
}

func (b *Booking) ToDetail() api.BookingDetail {
	detail := api.BookingDetail{
		TicketHash: b.TicketHash,
		Qty:        b.Qty,
		UserPhone:  b.phone(),
	}
	if b.Tier != nil {
		detail.TierName = b.Tier.Name
	}
	return detail
}

// VerifiedStatus is the status line of a successful verification.
const VerifiedStatus = "Ticket Verified Successfully"

func (b *Booking) ToVerified() api.VerifiedBooking {
	v := api.VerifiedBooking{
		Status:     VerifiedStatus,
		UserPhone:  b.phone(),
		Qty:        b.Qty,
		TicketHash: b.TicketHash,
	}
	if b.Event != nil {
		v.EventTitle = b.Event.Title
	}
	return v
}
