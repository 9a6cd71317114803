// Package api holds the JSON contract shared by the boxoffice server and
// the operator console. Field names follow the wire format exactly.
package api

import "time"

// Envelope is the response wrapper every server endpoint returns.
type Envelope[T any] struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       T      `json:"data,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

type Tier struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	TotalSeats int     `json:"total_seats"`
	SeatsSold  int     `json:"seats_sold"`
}

// Available is derived for display only; the server owns SeatsSold.
func (t Tier) Available() int {
	if n := t.TotalSeats - t.SeatsSold; n > 0 {
		return n
	}
	return 0
}

func (t Tier) SoldOut() bool {
	return t.Available() == 0
}

type Sponsor struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

type Event struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Tiers           []Tier    `json:"tiers"`
	Sponsors        []Sponsor `json:"sponsors"`
	TotalCollection float64   `json:"total_collection"`
}

// TotalSeats sums the seat allotment over all tiers.
func (e Event) TotalSeats() int {
	total := 0
	for _, t := range e.Tiers {
		total += t.TotalSeats
	}
	return total
}

func (e Event) Tier(id uint) (Tier, bool) {
	for _, t := range e.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

type CreateTierRequest struct {
	Name       string  `json:"name" binding:"required,max=100"`
	Price      float64 `json:"price" binding:"min=0"`
	TotalSeats int     `json:"total_seats" binding:"required,min=1"`
}

type CreateEventRequest struct {
	Title       string              `json:"title" binding:"required,max=255"`
	Description string              `json:"description"`
	Location    string              `json:"location" binding:"max=255"`
	StartTime   time.Time           `json:"start_time" binding:"required"`
	EndTime     time.Time           `json:"end_time" binding:"required"`
	TotalSeats  int                 `json:"total_seats,omitempty" binding:"omitempty,min=1"`
	Tiers       []CreateTierRequest `json:"tiers" binding:"required,min=1,dive"`
	SponsorIDs  []uint              `json:"sponsor_ids"`
}

type CreateSponsorRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Website string `json:"website,omitempty" binding:"omitempty,max=255"`
	LogoURL string `json:"logo_url,omitempty" binding:"omitempty,max=255"`
}

type BookTicketRequest struct {
	UserPhone string `json:"user_phone" binding:"required,phone10"`
	EventID   uint   `json:"event_id" binding:"required"`
	TierID    uint   `json:"tier_id" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1"`
}

type Booking struct {
	ID         uint    `json:"id"`
	UserPhone  string  `json:"user_phone"`
	EventID    uint    `json:"event_id"`
	TierID     uint    `json:"tier_id"`
	Qty        int     `json:"qty"`
	PricePaid  float64 `json:"price_paid"`
	TicketHash string  `json:"ticket_hash"`
}

type BookingDetail struct {
	TicketHash string `json:"ticket_hash"`
	Qty        int    `json:"qty"`
	UserPhone  string `json:"user_phone"`
	TierName   string `json:"tier_name"`
}

type VerifiedBooking struct {
	Status     string `json:"status"`
	EventTitle string `json:"event_title"`
	UserPhone  string `json:"user_phone"`
	Qty        int    `json:"qty"`
	TicketHash string `json:"ticket_hash"`
}

type PriceRequest struct {
	TierID uint `json:"tier_id" binding:"required"`
	Qty    int  `json:"qty" binding:"required,min=1"`
}

type PriceQuote struct {
	DynamicPrice float64 `json:"dynamic_price"`
	BasePrice    float64 `json:"base_price"`
	Quantity     int     `json:"quantity"`
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type LedgerBlock struct {
	Index        int            `json:"index"`
	Timestamp    float64        `json:"timestamp"`
	Data         map[string]any `json:"data"`
	PreviousHash string         `json:"previous_hash"`
	Hash         string         `json:"hash"`
}

type Ledger struct {
	EventID uint          `json:"event_id"`
	Valid   bool          `json:"valid"`
	Blocks  []LedgerBlock `json:"blocks"`
}
