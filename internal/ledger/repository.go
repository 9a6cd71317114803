package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Last(ctx context.Context, eventID uint) (*Block, error)
	Create(ctx context.Context, block *Block) error
	GetChain(ctx context.Context, eventID uint) ([]Block, error)
	GetByTicketHash(ctx context.Context, ticketHash string) (*Block, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Last returns the newest block of the event's chain, or nil for an empty chain.
func (r *repository) Last(ctx context.Context, eventID uint) (*Block, error) {
	var block Block
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("block_index DESC").
		First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *repository) Create(ctx context.Context, block *Block) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *repository) GetChain(ctx context.Context, eventID uint) ([]Block, error) {
	var blocks []Block
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("block_index ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *repository) GetByTicketHash(ctx context.Context, ticketHash string) (*Block, error) {
	var block Block
	err := r.db.WithContext(ctx).Where("ticket_hash = ?", ticketHash).First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}
