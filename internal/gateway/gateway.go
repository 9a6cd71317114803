// Package gateway is the console's view of the boxoffice service: one call
// per logical remote operation, each returning a decoded payload or an
// *Error carrying the service's message verbatim.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"boxoffice/pkg/api"
)

type Gateway interface {
	ListEvents(ctx context.Context) ([]api.Event, error)
	ListSponsors(ctx context.Context) ([]api.Sponsor, error)
	CreateEvent(ctx context.Context, req api.CreateEventRequest) (api.Event, error)
	DeleteEvent(ctx context.Context, eventID uint) error
	ListBookings(ctx context.Context, eventID uint) ([]api.BookingDetail, error)
	CreateSponsor(ctx context.Context, req api.CreateSponsorRequest) (api.Sponsor, error)
	BookTicket(ctx context.Context, req api.BookTicketRequest) (api.Booking, error)
	VerifyTicket(ctx context.Context, ticketHash string) (api.VerifiedBooking, error)
	ComputePrice(ctx context.Context, req api.PriceRequest) (api.PriceQuote, error)
}

// Error is a failed remote operation. Status is zero when the request never
// got a response.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.Status == 404
}
