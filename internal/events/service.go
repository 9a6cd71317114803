package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"boxoffice/internal/inventory"
	"boxoffice/internal/shared/constants"
	"boxoffice/internal/sponsors"
	"boxoffice/pkg/api"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrTierNotFound      = errors.New("tier not found")
	ErrInsufficientSeats = errors.New("not enough tickets available in this tier")
	ErrSeatSumMismatch   = errors.New("the sum of seats in all tiers must equal the total seats for the event")
	ErrInvalidSchedule   = errors.New("end time must be after start time")
	ErrNoTiers           = errors.New("at least one tier is required")
	ErrInvalidTier       = errors.New("invalid tier")
	ErrTitleRequired     = errors.New("title is required")
	ErrSponsorNotFound   = errors.New("sponsor not found")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateEvent(ctx context.Context, req api.CreateEventRequest) (*api.Event, error)
	GetAllEvents(ctx context.Context, query ListQuery) ([]api.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	// InvalidateLists drops cached event listings after seat counts or
	// collections change.
	InvalidateLists(ctx context.Context)
}

type service struct {
	repo         Repository
	sponsorRepo  sponsors.Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, sponsorRepo sponsors.Repository, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:        repo,
		sponsorRepo: sponsorRepo,
		log:         log,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, req api.CreateEventRequest) (*api.Event, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	sponsorIDs := dedupe(req.SponsorIDs)
	linked, err := s.sponsorRepo.GetByIDs(ctx, sponsorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load sponsors: %w", err)
	}
	if len(linked) != len(sponsorIDs) {
		return nil, ErrSponsorNotFound
	}

	event := &Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		TotalSeats:  req.TotalSeats,
		Sponsors:    linked,
	}
	for _, t := range req.Tiers {
		event.Tiers = append(event.Tiers, Tier{
			Name:       strings.TrimSpace(t.Name),
			Price:      t.Price,
			TotalSeats: t.TotalSeats,
		})
	}
	if event.TotalSeats == 0 {
		for _, t := range event.Tiers {
			event.TotalSeats += t.TotalSeats
		}
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.InvalidateLists(ctx)
	s.log.LogEventCreated(ctx, event.ID, event.Title, len(event.Tiers))

	resp := event.ToResponse(0)
	return &resp, nil
}

func validateCreate(req api.CreateEventRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidSchedule
	}
	if len(req.Tiers) == 0 {
		return ErrNoTiers
	}
	seats := make([]int, len(req.Tiers))
	for i, t := range req.Tiers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: tier %d needs a name", ErrInvalidTier, i+1)
		}
		if t.Price < 0 {
			return fmt.Errorf("%w: price for %s cannot be negative", ErrInvalidTier, t.Name)
		}
		if t.TotalSeats < 1 {
			return fmt.Errorf("%w: %s needs at least one seat", ErrInvalidTier, t.Name)
		}
		seats[i] = t.TotalSeats
	}
	if req.TotalSeats > 0 {
		if err := inventory.CheckSeatSum(req.TotalSeats, seats); err != nil {
			return ErrSeatSumMismatch
		}
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *service) GetAllEvents(ctx context.Context, query ListQuery) ([]api.Event, error) {
	fetch := func() (interface{}, error) {
		return s.loadEvents(ctx, query)
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		return data.([]api.Event), nil
	}

	var out []api.Event
	key := constants.BuildEventListKey(query.Skip, query.Limit)
	if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_EVENT_LIST, fetch, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []api.Event{}
	}
	return out, nil
}

func (s *service) loadEvents(ctx context.Context, query ListQuery) ([]api.Event, error) {
	list, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	ids := make([]uint, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	collections, err := s.repo.Collections(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to total collections: %w", err)
	}

	out := make([]api.Event, len(list))
	for i := range list {
		out[i] = list[i].ToResponse(collections[list[i].ID])
	}
	return out, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.InvalidateLists(ctx)
	if s.cacheService != nil {
		for _, key := range []string{constants.BuildLedgerKey(id), constants.BuildEventBookingsKey(id)} {
			if err := s.cacheService.Delete(ctx, key); err != nil {
				s.log.Warn("Failed to invalidate cache", "key", key, "error", err)
			}
		}
	}
	s.log.LogEventDeleted(ctx, id)
	return nil
}

func (s *service) InvalidateLists(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_ALL); err != nil {
		s.log.Warn("Failed to invalidate event cache", "error", err)
	}
}
