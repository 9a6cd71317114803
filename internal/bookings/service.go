package bookings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boxoffice/internal/events"
	"boxoffice/internal/ledger"
	"boxoffice/internal/notifications"
	"boxoffice/internal/pricing"
	"boxoffice/internal/shared/constants"
	"boxoffice/internal/users"
	"boxoffice/pkg/api"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

var (
	ErrTicketNotFound = errors.New("ticket hash not found or invalid")
	ErrInvalidQty     = errors.New("quantity must be at least 1")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	BookTicket(ctx context.Context, req api.BookTicketRequest) (*api.Booking, error)
	GetEventBookings(ctx context.Context, eventID uint) ([]api.BookingDetail, error)
	VerifyTicket(ctx context.Context, ticketHash string) (*api.VerifiedBooking, error)
	QuotePrice(ctx context.Context, req api.PriceRequest) (*api.PriceQuote, error)
}

// Deps are the collaborators a booking touches.
type Deps struct {
	DB       *gorm.DB
	Repo     Repository
	Events   events.Repository
	EventSvc events.Service
	Users    users.Repository
	Ledger   ledger.Service
	Producer notifications.Producer
	Pricing  pricing.Model
	Log      *logger.Logger
	Now      func() time.Time
	NewNonce func() string
}

type service struct {
	Deps
	cacheService cache.Service
}

func NewService(deps Deps) Service {
	if deps.Log == nil {
		deps.Log = logger.GetDefault()
	}
	if deps.Producer == nil {
		deps.Producer = notifications.NoopProducer{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewNonce == nil {
		deps.NewNonce = newNonce
	}
	if deps.Pricing.DemandCap == 0 {
		deps.Pricing = pricing.DefaultModel()
	}
	return &service{Deps: deps}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// newNonce returns 16 hex characters of randomness.
func newNonce() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}

// TicketHash mints the opaque ticket token handed to the patron.
func TicketHash(phone string, eventID uint, at time.Time, nonce string) string {
	raw := fmt.Sprintf("%s|%d|%s|%s", phone, eventID, at.UTC().Format(time.RFC3339Nano), nonce)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

type sale struct {
	booking    Booking
	eventTitle string
	tierName   string
}

func (s *service) BookTicket(ctx context.Context, req api.BookTicketRequest) (*api.Booking, error) {
	if req.Qty < 1 {
		return nil, ErrInvalidQty
	}

	var done sale
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eventRepo := s.Events.WithTx(tx)

		// Serializes bookings per event so the sold count used for pricing
		// and the ledger head cannot move underneath us.
		event, err := eventRepo.LockEvent(ctx, req.EventID)
		if err != nil {
			return err
		}
		tier, err := eventRepo.GetTier(ctx, req.TierID)
		if err != nil {
			return err
		}
		if tier.EventID != event.ID {
			return events.ErrTierNotFound
		}
		if tier.SeatsSold+req.Qty > tier.TotalSeats {
			return events.ErrInsufficientSeats
		}

		sold, err := eventRepo.SeatsSold(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("failed to count sold seats: %w", err)
		}
		now := s.Now()
		total := s.Pricing.Total(pricing.Input{
			BasePrice: tier.Price,
			EventSold: sold,
			Qty:       req.Qty,
			StartTime: event.StartTime,
			Now:       now,
		})

		patron, err := s.Users.WithTx(tx).GetOrCreateByPhone(ctx, req.UserPhone)
		if err != nil {
			return err
		}

		if err := eventRepo.RecordSale(ctx, tier.ID, req.Qty, total/float64(req.Qty)); err != nil {
			return err
		}

		booking := Booking{
			UserID:     patron.ID,
			EventID:    event.ID,
			TierID:     tier.ID,
			Qty:        req.Qty,
			PricePaid:  total,
			TicketHash: TicketHash(req.UserPhone, event.ID, now, s.NewNonce()),
		}
		if err := s.Repo.WithTx(tx).Create(ctx, &booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if _, err := s.Ledger.Append(ctx, tx, ledger.Entry{
			TicketHash: booking.TicketHash,
			UserPhone:  req.UserPhone,
			EventID:    event.ID,
			Tier:       tier.Name,
		}); err != nil {
			return err
		}

		done = sale{booking: booking, eventTitle: event.Title, tierName: tier.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterSale(ctx, done, req.UserPhone)

	resp := done.booking.ToResponse(req.UserPhone)
	return &resp, nil
}

// afterSale runs once the booking is committed. Nothing here can undo it.
func (s *service) afterSale(ctx context.Context, done sale, phone string) {
	b := done.booking
	s.EventSvc.InvalidateLists(ctx)
	s.Ledger.Invalidate(ctx, b.EventID)
	s.Log.LogBookingCreated(ctx, b.ID, b.EventID, b.TierID, b.Qty, b.PricePaid)

	n := notifications.NewBookingConfirmed(notifications.BookingNotification{
		BookingID:  b.ID,
		EventID:    b.EventID,
		EventTitle: done.eventTitle,
		TierName:   done.tierName,
		UserPhone:  phone,
		Qty:        b.Qty,
		PricePaid:  b.PricePaid,
		TicketHash: b.TicketHash,
	})
	if err := s.Producer.PublishBookingConfirmed(ctx, n); err != nil {
		s.Log.WithError(err).Warn("Failed to publish booking notification", "booking_id", b.ID)
	}
}

func (s *service) GetEventBookings(ctx context.Context, eventID uint) ([]api.BookingDetail, error) {
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	fetch := func() (interface{}, error) {
		list, err := s.Repo.GetByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}
		out := make([]api.BookingDetail, len(list))
		for i := range list {
			out[i] = list[i].ToDetail()
		}
		return out, nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		return data.([]api.BookingDetail), nil
	}

	var out []api.BookingDetail
	key := constants.BuildEventBookingsKey(eventID)
	if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_EVENT_BOOKINGS, fetch, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []api.BookingDetail{}
	}
	return out, nil
}

func (s *service) VerifyTicket(ctx context.Context, ticketHash string) (*api.VerifiedBooking, error) {
	ticketHash = strings.TrimSpace(ticketHash)
	booking, err := s.Repo.GetByTicketHash(ctx, ticketHash)
	if err != nil {
		s.Log.LogTicketVerified(ctx, ticketHash, false)
		return nil, err
	}

	// A ticket without a ledger entry still verifies, but it should not exist.
	if _, err := s.Ledger.FindTicket(ctx, ticketHash); err != nil {
		s.Log.WithError(err).Warn("Ticket missing from ledger", "booking_id", booking.ID)
	}

	s.Log.LogTicketVerified(ctx, ticketHash, true)
	v := booking.ToVerified()
	return &v, nil
}

func (s *service) QuotePrice(ctx context.Context, req api.PriceRequest) (*api.PriceQuote, error) {
	if req.Qty < 1 {
		return nil, ErrInvalidQty
	}

	tier, err := s.Events.GetTier(ctx, req.TierID)
	if err != nil {
		return nil, err
	}
	event, err := s.Events.GetByID(ctx, tier.EventID)
	if err != nil {
		return nil, err
	}
	sold, err := s.Events.SeatsSold(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sold seats: %w", err)
	}

	total := s.Pricing.Total(pricing.Input{
		BasePrice: tier.Price,
		EventSold: sold,
		Qty:       req.Qty,
		StartTime: event.StartTime,
		Now:       s.Now(),
	})
	return &api.PriceQuote{
		DynamicPrice: total,
		BasePrice:    tier.Price * float64(req.Qty),
		Quantity:     req.Qty,
	}, nil
}
