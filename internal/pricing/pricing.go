// Package pricing computes demand and urgency adjusted ticket prices.
package pricing

import (
	"math"
	"time"

	"boxoffice/internal/shared/config"
)

// MinHoursToStart floors the time-to-event so urgency stays finite for
// events that already started.
const MinHoursToStart = 0.1

// Model is the closed-form price curve. The per-ticket price rises with the
// number of seats sold across the event and as the start time approaches,
// and is clamped to [base, MaxMultiplier*base].
type Model struct {
	DemandCap     int
	DemandWeight  float64
	UrgencyWeight float64
	UrgencyScale  time.Duration
	MaxMultiplier float64
}

func DefaultModel() Model {
	return Model{
		DemandCap:     300,
		DemandWeight:  0.4,
		UrgencyWeight: 0.1,
		UrgencyScale:  48 * time.Hour,
		MaxMultiplier: 1.5,
	}
}

func NewModel(cfg config.PricingConfig) Model {
	m := DefaultModel()
	if cfg.DemandCap > 0 {
		m.DemandCap = cfg.DemandCap
	}
	if cfg.DemandWeight >= 0 {
		m.DemandWeight = cfg.DemandWeight
	}
	if cfg.UrgencyWeight >= 0 {
		m.UrgencyWeight = cfg.UrgencyWeight
	}
	if cfg.UrgencyScale > 0 {
		m.UrgencyScale = cfg.UrgencyScale
	}
	if cfg.MaxMultiplier >= 1 {
		m.MaxMultiplier = cfg.MaxMultiplier
	}
	return m
}

// Input is what a quote depends on.
type Input struct {
	// BasePrice is the tier's current per-ticket price.
	BasePrice float64
	// EventSold is the number of seats already sold over all tiers of the event.
	EventSold int
	Qty       int
	StartTime time.Time
	Now       time.Time
}

// PerTicket returns the clamped price of one ticket.
func (m Model) PerTicket(in Input) float64 {
	base := in.BasePrice
	sold := min(in.EventSold+in.Qty, m.DemandCap)
	demand := float64(sold) / float64(m.DemandCap) * m.DemandWeight * base

	hours := math.Max(in.StartTime.Sub(in.Now).Hours(), MinHoursToStart)
	urgency := math.Exp(-hours/m.UrgencyScale.Hours()) * m.UrgencyWeight * base

	price := base + demand + urgency
	return math.Max(base, math.Min(price, base*m.MaxMultiplier))
}

// Total is the price of qty tickets.
func (m Model) Total(in Input) float64 {
	return m.PerTicket(in) * float64(in.Qty)
}
