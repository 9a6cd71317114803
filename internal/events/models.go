package events

import (
	"sort"
	"time"

	"boxoffice/internal/sponsors"
	"boxoffice/pkg/api"
)

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location" gorm:"size:255"`
	StartTime   time.Time `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time `json:"end_time" gorm:"not null"`
	// TotalSeats is the declared capacity; the tiers partition it.
	TotalSeats int                `json:"total_seats" gorm:"not null;default:0"`
	Tiers      []Tier             `json:"tiers" gorm:"foreignKey:EventID"`
	Sponsors   []sponsors.Sponsor `json:"sponsors" gorm:"many2many:event_sponsors;"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Tier is a priced block of seats. Price moves with each sale to the last
// per-ticket price paid.
type Tier struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	EventID    uint    `json:"event_id" gorm:"not null;index"`
	Name       string  `json:"name" gorm:"not null;size:100"`
	Price      float64 `json:"price" gorm:"not null"`
	TotalSeats int     `json:"total_seats" gorm:"not null"`
	SeatsSold  int     `json:"seats_sold" gorm:"not null;default:0;check:chk_tiers_seats_sold,seats_sold >= 0 AND seats_sold <= total_seats"`
}

func (Tier) TableName() string {
	return "tiers"
}

func (t *Tier) Available() int {
	return t.TotalSeats - t.SeatsSold
}

func (t *Tier) ToResponse() api.Tier {
	return api.Tier{
		ID:         t.ID,
		Name:       t.Name,
		Price:      t.Price,
		TotalSeats: t.TotalSeats,
		SeatsSold:  t.SeatsSold,
	}
}

// ToResponse converts the event with its preloaded tiers and sponsors.
func (e *Event) ToResponse(totalCollection float64) api.Event {
	tiers := make([]api.Tier, len(e.Tiers))
	for i := range e.Tiers {
		tiers[i] = e.Tiers[i].ToResponse()
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].ID < tiers[j].ID })

	sps := sponsors.ToResponses(e.Sponsors)
	sort.Slice(sps, func(i, j int) bool { return sps[i].ID < sps[j].ID })

	return api.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Location:        e.Location,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Tiers:           tiers,
		Sponsors:        sps,
		TotalCollection: totalCollection,
	}
}

// ListQuery is the skip/limit window for listing events.
type ListQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=500"`
}
