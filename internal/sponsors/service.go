package sponsors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/api"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

var (
	ErrSponsorExists      = errors.New("sponsor already exists")
	ErrSponsorNameMissing = errors.New("sponsor name is required")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateSponsor(ctx context.Context, req api.CreateSponsorRequest) (*api.Sponsor, error)
	GetAllSponsors(ctx context.Context) ([]api.Sponsor, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, log: log}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateSponsor(ctx context.Context, req api.CreateSponsorRequest) (*api.Sponsor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrSponsorNameMissing
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrSponsorExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check sponsor name: %w", err)
	}

	sponsor := &Sponsor{
		Name:    name,
		Website: strings.TrimSpace(req.Website),
		LogoURL: strings.TrimSpace(req.LogoURL),
	}
	if err := s.repo.Create(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("failed to create sponsor: %w", err)
	}

	s.invalidate(ctx)
	s.log.LogSponsorCreated(ctx, sponsor.ID, sponsor.Name)

	resp := sponsor.ToResponse()
	return &resp, nil
}

func (s *service) GetAllSponsors(ctx context.Context) ([]api.Sponsor, error) {
	fetch := func() (interface{}, error) {
		list, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sponsors: %w", err)
		}
		return ToResponses(list), nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		return data.([]api.Sponsor), nil
	}

	var out []api.Sponsor
	if err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_SPONSORS_LIST, constants.TTL_SPONSORS_LIST, fetch, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []api.Sponsor{}
	}
	return out, nil
}

// invalidate drops sponsor lists and event lists, which embed sponsors.
func (s *service) invalidate(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	for _, pattern := range []string{constants.PATTERN_INVALIDATE_SPONSORS_ALL, constants.PATTERN_INVALIDATE_EVENT_ALL} {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			s.log.Warn("Failed to invalidate cache", "pattern", pattern, "error", err)
		}
	}
}
