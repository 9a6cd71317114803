package bookings

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *Booking) error
	GetByEventID(ctx context.Context, eventID uint) ([]Booking, error)
	GetByTicketHash(ctx context.Context, ticketHash string) (*Booking, error)
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

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Omit("User", "Event", "Tier").Create(booking).Error
}

func (r *repository) GetByEventID(ctx context.Context, eventID uint) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tier").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) GetByTicketHash(ctx context.Context, ticketHash string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("ticket_hash = ?", ticketHash).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
