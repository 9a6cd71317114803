package workflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"boxoffice/internal/inventory"
	"boxoffice/pkg/api"
)

// FormTimeLayout is how operators type event start and end times.
const FormTimeLayout = "2006-01-02 15:04"

const defaultTierName = "General Admission"

// TierDraft is a tier as typed into the create-event form. It only exists
// while the form is open.
type TierDraft struct {
	Name  string
	Price string
	Seats string
}

// EventForm is the create-event form session.
type EventForm struct {
	Title       string
	Description string
	Location    string
	Start       string
	End         string
	TotalSeats  string
	Tiers       []TierDraft
	SponsorIDs  []uint
}

// FormField addresses one editable text field of an EventForm.
type FormField struct {
	Key   string
	Label string
}

var eventFields = []FormField{
	{Key: "title", Label: "Title"},
	{Key: "description", Label: "Description"},
	{Key: "location", Label: "Location"},
	{Key: "start", Label: "Start (YYYY-MM-DD HH:MM)"},
	{Key: "end", Label: "End (YYYY-MM-DD HH:MM)"},
	{Key: "total_seats", Label: "Total Seats"},
}

// Fields lists the editable fields in tab order: event fields first, then
// name, price and seats for each tier.
func (f *EventForm) Fields() []FormField {
	out := append([]FormField(nil), eventFields...)
	for i := range f.Tiers {
		n := i + 1
		out = append(out,
			FormField{Key: tierKey(i, "name"), Label: fmt.Sprintf("Tier %d Name", n)},
			FormField{Key: tierKey(i, "price"), Label: fmt.Sprintf("Tier %d Price", n)},
			FormField{Key: tierKey(i, "seats"), Label: fmt.Sprintf("Tier %d Seats", n)},
		)
	}
	return out
}

func tierKey(i int, part string) string {
	return fmt.Sprintf("tier.%d.%s", i, part)
}

func (f *EventForm) field(key string) *string {
	switch key {
	case "title":
		return &f.Title
	case "description":
		return &f.Description
	case "location":
		return &f.Location
	case "start":
		return &f.Start
	case "end":
		return &f.End
	case "total_seats":
		return &f.TotalSeats
	}
	var i int
	var part string
	if _, err := fmt.Sscanf(strings.ReplaceAll(key, ".", " "), "tier %d %s", &i, &part); err != nil {
		return nil
	}
	if i < 0 || i >= len(f.Tiers) {
		return nil
	}
	switch part {
	case "name":
		return &f.Tiers[i].Name
	case "price":
		return &f.Tiers[i].Price
	case "seats":
		return &f.Tiers[i].Seats
	}
	return nil
}

func (f *EventForm) Get(key string) string {
	if p := f.field(key); p != nil {
		return *p
	}
	return ""
}

// Set writes key and reports whether the key exists.
func (f *EventForm) Set(key, value string) bool {
	p := f.field(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (f *EventForm) HasSponsor(id uint) bool {
	for _, s := range f.SponsorIDs {
		if s == id {
			return true
		}
	}
	return false
}

func (f *EventForm) toggleSponsor(id uint) {
	for i, s := range f.SponsorIDs {
		if s == id {
			f.SponsorIDs = append(f.SponsorIDs[:i], f.SponsorIDs[i+1:]...)
			return
		}
	}
	f.SponsorIDs = append(f.SponsorIDs, id)
}

func (f *EventForm) clone() EventForm {
	c := *f
	c.Tiers = append([]TierDraft(nil), f.Tiers...)
	c.SponsorIDs = append([]uint(nil), f.SponsorIDs...)
	return c
}

// build turns the form into a create request. Seat-sum mismatches are
// reported as inventory.ErrSeatSumMismatch; every other problem is a
// *ValidationError.
func (f *EventForm) build(loc *time.Location) (api.CreateEventRequest, error) {
	var req api.CreateEventRequest

	title := strings.TrimSpace(f.Title)
	if title == "" {
		return req, invalid("Event title is required.")
	}
	start, err := time.ParseInLocation(FormTimeLayout, strings.TrimSpace(f.Start), loc)
	if err != nil {
		return req, invalid("Please enter a valid start time (YYYY-MM-DD HH:MM).")
	}
	end, err := time.ParseInLocation(FormTimeLayout, strings.TrimSpace(f.End), loc)
	if err != nil {
		return req, invalid("Please enter a valid end time (YYYY-MM-DD HH:MM).")
	}
	if !end.After(start) {
		return req, invalid("End time must be after start time.")
	}
	if len(f.Tiers) == 0 {
		return req, invalid("Add at least one tier.")
	}

	tiers := make([]api.CreateTierRequest, 0, len(f.Tiers))
	seats := make([]int, 0, len(f.Tiers))
	for i, d := range f.Tiers {
		name := strings.TrimSpace(d.Name)
		price, perr := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
		n, serr := strconv.Atoi(strings.TrimSpace(d.Seats))
		badPrice := perr != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0)
		if name == "" || badPrice || serr != nil || n <= 0 {
			return req, invalid(fmt.Sprintf("Tier %d has an invalid name, price or seat count.", i+1))
		}
		tiers = append(tiers, api.CreateTierRequest{Name: name, Price: price, TotalSeats: n})
		seats = append(seats, n)
	}

	total, err := strconv.Atoi(strings.TrimSpace(f.TotalSeats))
	if err != nil {
		return req, inventory.ErrSeatSumMismatch
	}
	if err := inventory.CheckSeatSum(total, seats); err != nil {
		return req, err
	}

	req = api.CreateEventRequest{
		Title:       title,
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		StartTime:   start,
		EndTime:     end,
		TotalSeats:  total,
		Tiers:       tiers,
		SponsorIDs:  append([]uint(nil), f.SponsorIDs...),
	}
	return req, nil
}
