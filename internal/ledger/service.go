package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/api"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

var (
	ErrBlockNotFound = errors.New("ledger block not found")
	ErrEmptyLedger   = errors.New("ledger has no blocks")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	// Append records entry on the event's chain inside tx, creating the
	// genesis block first when the chain is empty.
	Append(ctx context.Context, tx *gorm.DB, entry Entry) (*Block, error)
	GetLedger(ctx context.Context, eventID uint) (*api.Ledger, error)
	Verify(ctx context.Context, eventID uint) (bool, error)
	FindTicket(ctx context.Context, ticketHash string) (*Block, error)
	// Invalidate drops the cached view of an event's chain. Call it after
	// the transaction that appended to it commits.
	Invalidate(ctx context.Context, eventID uint)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	now          func() time.Time
	log          *logger.Logger
}

type Option func(*service)

// WithNow overrides the block timestamp source.
func WithNow(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *service) { s.log = log }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo: repo,
		now:  time.Now,
		log:  logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) timestamp() float64 {
	return float64(s.now().UnixMicro()) / 1e6
}

func (s *service) Append(ctx context.Context, tx *gorm.DB, entry Entry) (*Block, error) {
	repo := s.repo.WithTx(tx)

	last, err := repo.Last(ctx, entry.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger head: %w", err)
	}
	if last == nil {
		last, err = s.create(ctx, repo, entry.EventID, 0, `{"genesis":true}`, GenesisPreviousHash, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create genesis block: %w", err)
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	ticket := entry.TicketHash
	block, err := s.create(ctx, repo, entry.EventID, last.Index+1, string(data), last.Hash, &ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to append ledger block: %w", err)
	}
	return block, nil
}

func (s *service) create(ctx context.Context, repo Repository, eventID uint, index int, data, previousHash string, ticketHash *string) (*Block, error) {
	block := &Block{
		EventID:      eventID,
		Index:        index,
		Timestamp:    s.timestamp(),
		Data:         data,
		PreviousHash: previousHash,
		TicketHash:   ticketHash,
	}
	hash, err := HashBlock(block.Index, block.Timestamp, block.Data, block.PreviousHash)
	if err != nil {
		return nil, err
	}
	block.Hash = hash
	if err := repo.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *service) GetLedger(ctx context.Context, eventID uint) (*api.Ledger, error) {
	fetch := func() (interface{}, error) {
		blocks, err := s.repo.GetChain(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		if len(blocks) == 0 {
			return nil, ErrEmptyLedger
		}
		out := api.Ledger{
			EventID: eventID,
			Valid:   VerifyChain(blocks),
			Blocks:  make([]api.LedgerBlock, len(blocks)),
		}
		for i := range blocks {
			out.Blocks[i] = blocks[i].ToResponse()
		}
		return out, nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		l := data.(api.Ledger)
		return &l, nil
	}

	var l api.Ledger
	if err := s.cacheService.GetOrSet(ctx, constants.BuildLedgerKey(eventID), constants.TTL_LEDGER_EVENT, fetch, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *service) Verify(ctx context.Context, eventID uint) (bool, error) {
	blocks, err := s.repo.GetChain(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to load ledger: %w", err)
	}
	if len(blocks) == 0 {
		return false, ErrEmptyLedger
	}
	valid := VerifyChain(blocks)
	if !valid {
		s.log.Warn("Ledger chain broken", "event_id", eventID, "blocks", len(blocks))
	}
	return valid, nil
}

func (s *service) FindTicket(ctx context.Context, ticketHash string) (*Block, error) {
	return s.repo.GetByTicketHash(ctx, ticketHash)
}

func (s *service) Invalidate(ctx context.Context, eventID uint) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildLedgerKey(eventID)); err != nil {
		s.log.Warn("Failed to invalidate ledger cache", "event_id", eventID, "error", err)
	}
}
