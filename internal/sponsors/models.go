package sponsors

import (
	"time"

	"boxoffice/pkg/api"
)

type Sponsor struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex;size:200"`
	Website   string    `json:"website" gorm:"size:255"`
	LogoURL   string    `json:"logo_url" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}

func (s *Sponsor) ToResponse() api.Sponsor {
	return api.Sponsor{
		ID:      s.ID,
		Name:    s.Name,
		Website: s.Website,
		LogoURL: s.LogoURL,
	}
}

func ToResponses(list []Sponsor) []api.Sponsor {
	out := make([]api.Sponsor, len(list))
	for i := range list {
		out[i] = list[i].ToResponse()
	}
	return out
}
