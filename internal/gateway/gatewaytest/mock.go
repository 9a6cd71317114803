package gatewaytest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boxoffice/internal/gateway"
	"boxoffice/pkg/api"
)

// Mock is a testify mock of gateway.Gateway for orchestrator and UI tests.
type Mock struct {
	mock.Mock
}

var _ gateway.Gateway = (*Mock)(nil)

func (m *Mock) ListEvents(ctx context.Context) ([]api.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]api.Event)
	return events, args.Error(1)
}

func (m *Mock) ListSponsors(ctx context.Context) ([]api.Sponsor, error) {
	args := m.Called(ctx)
	sponsors, _ := args.Get(0).([]api.Sponsor)
	return sponsors, args.Error(1)
}

func (m *Mock) CreateEvent(ctx context.Context, req api.CreateEventRequest) (api.Event, error) {
	args := m.Called(ctx, req)
	event, _ := args.Get(0).(api.Event)
	return event, args.Error(1)
}

func (m *Mock) DeleteEvent(ctx context.Context, eventID uint) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *Mock) ListBookings(ctx context.Context, eventID uint) ([]api.BookingDetail, error) {
	args := m.Called(ctx, eventID)
	bookings, _ := args.Get(0).([]api.BookingDetail)
	return bookings, args.Error(1)
}

func (m *Mock) CreateSponsor(ctx context.Context, req api.CreateSponsorRequest) (api.Sponsor, error) {
	args := m.Called(ctx, req)
	sponsor, _ := args.Get(0).(api.Sponsor)
	return sponsor, args.Error(1)
}

func (m *Mock) BookTicket(ctx context.Context, req api.BookTicketRequest) (api.Booking, error) {
	args := m.Called(ctx, req)
	booking, _ := args.Get(0).(api.Booking)
	return booking, args.Error(1)
}

func (m *Mock) VerifyTicket(ctx context.Context, ticketHash string) (api.VerifiedBooking, error) {
	args := m.Called(ctx, ticketHash)
	verified, _ := args.Get(0).(api.VerifiedBooking)
	return verified, args.Error(1)
}

func (m *Mock) ComputePrice(ctx context.Context, req api.PriceRequest) (api.PriceQuote, error) {
	args := m.Called(ctx, req)
	quote, _ := args.Get(0).(api.PriceQuote)
	return quote, args.Error(1)
}
