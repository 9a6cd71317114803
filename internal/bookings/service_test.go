package bookings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boxoffice/internal/events"
	"boxoffice/internal/ledger"
	"boxoffice/internal/notifications"
	"boxoffice/internal/pricing"
	"boxoffice/internal/shared/database/dbtest"
	"boxoffice/internal/sponsors"
	"boxoffice/internal/users"
	"boxoffice/pkg/api"
	"boxoffice/pkg/cache/cachetest"
	"boxoffice/pkg/logger"
)

type recordingProducer struct {
	mu   sync.Mutex
	sent []*notifications.BookingNotification
	err  error
}

func (p *recordingProducer) PublishBookingConfirmed(_ context.Context, n *notifications.BookingNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

var (
	now   = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	start = now.Add(60 * 24 * time.Hour)
)

// flat prices every ticket at its base price.
var flat = pricing.Model{DemandCap: 300, UrgencyScale: 48 * time.Hour, MaxMultiplier: 1.5}

type fixture struct {
	db       *gorm.DB
	svc      Service
	events   events.Service
	ledger   ledger.Service
	producer *recordingProducer
	mem      *cachetest.Memory
	event    *api.Event
}

func newFixture(t *testing.T, model pricing.Model) *fixture {
	t.Helper()
	db := dbtest.New(t,
		&users.User{}, &sponsors.Sponsor{}, &events.Event{}, &events.Tier{},
		&Booking{}, &ledger.Block{},
	)
	log := logger.NewWithWriter(io.Discard, "error")
	mem := cachetest.NewMemory()

	eventRepo := events.NewRepository(db)
	eventSvc := events.NewService(eventRepo, sponsors.NewRepository(db), log)
	eventSvc.SetCacheService(mem)
	ledgerSvc := ledger.NewService(ledger.NewRepository(db), ledger.WithLogger(log))
	ledgerSvc.SetCacheService(mem)
	producer := &recordingProducer{}

	var nonce atomic.Int64
	svc := NewService(Deps{
		DB:       db,
		Repo:     NewRepository(db),
		Events:   eventRepo,
		EventSvc: eventSvc,
		Users:    users.NewRepository(db),
		Ledger:   ledgerSvc,
		Producer: producer,
		Pricing:  model,
		Log:      log,
		Now:      func() time.Time { return now },
		NewNonce: func() string { return fmt.Sprintf("%016x", nonce.Add(1)) },
	})
	svc.SetCacheService(mem)

	event, err := eventSvc.CreateEvent(context.Background(), api.CreateEventRequest{
		Title:     "Jazz Night",
		Location:  "Hall A",
		StartTime: start,
		EndTime:   start.Add(3 * time.Hour),
		Tiers: []api.CreateTierRequest{
			{Name: "VIP", Price: 100, TotalSeats: 5},
			{Name: "General", Price: 40, TotalSeats: 50},
		},
	})
	require.NoError(t, err)

	return &fixture{db: db, svc: svc, events: eventSvc, ledger: ledgerSvc, producer: producer, mem: mem, event: event}
}

func (f *fixture) tier(name string) api.Tier {
	for _, tier := range f.event.Tiers {
		if tier.Name == name {
			return tier
		}
	}
	panic("no tier " + name)
}

func (f *fixture) book(phone, tier string, qty int) (*api.Booking, error) {
	return f.svc.BookTicket(context.Background(), api.BookTicketRequest{
		UserPhone: phone,
		EventID:   f.event.ID,
		TierID:    f.tier(tier).ID,
		Qty:       qty,
	})
}

func TestTicketHashIsDeterministic(t *testing.T) {
	a := TicketHash("9876543210", 7, now, "0123456789abcdef")
	b := TicketHash("9876543210", 7, now, "0123456789abcdef")
	c := TicketHash("9876543210", 7, now, "fedcba9876543210")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestNewNonce(t *testing.T) {
	n := newNonce()
	assert.Len(t, n, 16)
	assert.NotContains(t, n, "-")
	assert.NotEqual(t, n, newNonce())
}

func TestBookTicket(t *testing.T) {
	f := newFixture(t, flat)
	ctx := context.Background()

	booking, err := f.book("9876543210", "VIP", 2)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, "9876543210", booking.UserPhone)
	assert.Equal(t, 2, booking.Qty)
	assert.Equal(t, 200.0, booking.PricePaid)
	assert.Len(t, booking.TicketHash, 64)

	var tier events.Tier
	require.NoError(t, f.db.First(&tier, f.tier("VIP").ID).Error)
	assert.Equal(t, 2, tier.SeatsSold)

	var patrons int64
	require.NoError(t, f.db.Model(&users.User{}).Count(&patrons).Error)
	assert.EqualValues(t, 1, patrons)

	chain, err := f.ledger.GetLedger(ctx, f.event.ID)
	require.NoError(t, err)
	assert.True(t, chain.Valid)
	require.Len(t, chain.Blocks, 2, "genesis plus one sale")
	assert.Equal(t, booking.TicketHash, chain.Blocks[1].Data["ticket_hash"])

	require.Len(t, f.producer.sent, 1)
	sent := f.producer.sent[0]
	assert.Equal(t, booking.ID, sent.BookingID)
	assert.Equal(t, "Jazz Night", sent.EventTitle)
	assert.Equal(t, "VIP", sent.TierName)
}

func TestBookTicketReusesPatron(t *testing.T) {
	f := newFixture(t, flat)

	first, err := f.book("9876543210", "General", 1)
	require.NoError(t, err)
	second, err := f.book("9876543210", "General", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.TicketHash, second.TicketHash)

	var patrons int64
	require.NoError(t, f.db.Model(&users.User{}).Count(&patrons).Error)
	assert.EqualValues(t, 1, patrons)
}

func TestBookTicketDynamicPrice(t *testing.T) {
	f := newFixture(t, pricing.DefaultModel())

	booking, err := f.book("9876543210", "VIP", 2)
	require.NoError(t, err)
	// Two of the demand cap sold, two months out: a small demand premium only.
	assert.InDelta(t, 2*(100+2.0/300*0.4*100), booking.PricePaid, 1e-6)

	var tier events.Tier
	require.NoError(t, f.db.First(&tier, f.tier("VIP").ID).Error)
	assert.InDelta(t, booking.PricePaid/2, tier.Price, 1e-6, "tier price follows the last sale")
}

func TestBookTicketOverbook(t *testing.T) {
	f := newFixture(t, flat)

	_, err := f.book("9876543210", "VIP", 4)
	require.NoError(t, err)

	_, err = f.book("9876543211", "VIP", 2)
	assert.ErrorIs(t, err, events.ErrInsufficientSeats)

	var tier events.Tier
	require.NoError(t, f.db.First(&tier, f.tier("VIP").ID).Error)
	assert.Equal(t, 4, tier.SeatsSold)

	var bookings int64
	require.NoError(t, f.db.Model(&Booking{}).Count(&bookings).Error)
	assert.EqualValues(t, 1, bookings)

	chain, err := f.ledger.GetLedger(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.Len(t, chain.Blocks, 2, "failed sale leaves no ledger trace")
	assert.Len(t, f.producer.sent, 1)
}

func TestBookTicketConcurrentNeverOversells(t *testing.T) {
	f := newFixture(t, flat)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			phone := fmt.Sprintf("98765432%02d", i)
			if _, err := f.book(phone, "VIP", 1); err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, sold)
	var tier events.Tier
	require.NoError(t, f.db.First(&tier, f.tier("VIP").ID).Error)
	assert.Equal(t, 5, tier.SeatsSold)

	ok, err := f.ledger.Verify(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBookTicketRejects(t *testing.T) {
	f := newFixture(t, flat)
	other, err := f.events.CreateEvent(context.Background(), api.CreateEventRequest{
		Title:     "Other",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Tiers:     []api.CreateTierRequest{{Name: "Floor", Price: 10, TotalSeats: 10}},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  api.BookTicketRequest
		want error
	}{
		{"unknown event", api.BookTicketRequest{UserPhone: "9876543210", EventID: 999, TierID: f.tier("VIP").ID, Qty: 1}, events.ErrEventNotFound},
		{"unknown tier", api.BookTicketRequest{UserPhone: "9876543210", EventID: f.event.ID, TierID: 999, Qty: 1}, events.ErrTierNotFound},
		{"tier of another event", api.BookTicketRequest{UserPhone: "9876543210", EventID: f.event.ID, TierID: other.Tiers[0].ID, Qty: 1}, events.ErrTierNotFound},
		{"zero qty", api.BookTicketRequest{UserPhone: "9876543210", EventID: f.event.ID, TierID: f.tier("VIP").ID}, ErrInvalidQty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.BookTicket(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.producer.sent)
}

func TestBookTicketSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t, flat)
	f.producer.err = errors.New("broker down")

	booking, err := f.book("9876543210", "General", 1)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
}

func TestBookingInvalidatesCachedListings(t *testing.T) {
	f := newFixture(t, flat)
	ctx := context.Background()

	_, err := f.events.GetAllEvents(ctx, events.ListQuery{Limit: 100})
	require.NoError(t, err)
	_, err = f.svc.GetEventBookings(ctx, f.event.ID)
	require.NoError(t, err)
	require.NotZero(t, f.mem.Keys())

	_, err = f.book("9876543210", "General", 3)
	require.NoError(t, err)

	list, err := f.events.GetAllEvents(ctx, events.ListQuery{Limit: 100})
	require.NoError(t, err)
	require.Len(t, list, 1)
	general, ok := list[0].Tier(f.tier("General").ID)
	require.True(t, ok)
	assert.Equal(t, 3, general.SeatsSold)

	detail, err := f.svc.GetEventBookings(ctx, f.event.ID)
	require.NoError(t, err)
	require.Len(t, detail, 1)
	assert.Equal(t, "General", detail[0].TierName)
	assert.Equal(t, "9876543210", detail[0].UserPhone)
}

func TestGetEventBookingsUnknownEvent(t *testing.T) {
	f := newFixture(t, flat)
	_, err := f.svc.GetEventBookings(context.Background(), 999)
	assert.ErrorIs(t, err, events.ErrEventNotFound)
}

func TestGetEventBookingsEmpty(t *testing.T) {
	f := newFixture(t, flat)
	list, err := f.svc.GetEventBookings(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestVerifyTicket(t *testing.T) {
	f := newFixture(t, flat)
	ctx := context.Background()
	booking, err := f.book("9876543210", "VIP", 2)
	require.NoError(t, err)

	v, err := f.svc.VerifyTicket(ctx, " "+booking.TicketHash+" ")
	require.NoError(t, err)
	assert.Equal(t, VerifiedStatus, v.Status)
	assert.Equal(t, "Jazz Night", v.EventTitle)
	assert.Equal(t, "9876543210", v.UserPhone)
	assert.Equal(t, 2, v.Qty)

	_, err = f.svc.VerifyTicket(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestQuotePrice(t *testing.T) {
	f := newFixture(t, pricing.DefaultModel())
	ctx := context.Background()

	quote, err := f.svc.QuotePrice(ctx, api.PriceRequest{TierID: f.tier("General").ID, Qty: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, quote.Quantity)
	assert.Equal(t, 120.0, quote.BasePrice)
	assert.InDelta(t, 3*(40+3.0/300*0.4*40), quote.DynamicPrice, 1e-6)

	// Quoting sells nothing.
	var tier events.Tier
	require.NoError(t, f.db.First(&tier, f.tier("General").ID).Error)
	assert.Zero(t, tier.SeatsSold)

	_, err = f.svc.QuotePrice(ctx, api.PriceRequest{TierID: 999, Qty: 1})
	assert.ErrorIs(t, err, events.ErrTierNotFound)
	_, err = f.svc.QuotePrice(ctx, api.PriceRequest{TierID: f.tier("General").ID})
	assert.ErrorIs(t, err, ErrInvalidQty)
}
