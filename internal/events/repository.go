package events

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	GetAll(ctx context.Context, query ListQuery) ([]Event, error)
	Delete(ctx context.Context, id uint) error
	// Collections sums price_paid over bookings for each of the events.
	Collections(ctx context.Context, eventIDs []uint) (map[uint]float64, error)

	// Booking support. These are meant to run inside the booking transaction.
	LockEvent(ctx context.Context, id uint) (*Event, error)
	GetTier(ctx context.Context, tierID uint) (*Tier, error)
	SeatsSold(ctx context.Context, eventID uint) (int, error)
	RecordSale(ctx context.Context, tierID uint, qty int, unitPrice float64) error
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

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Sponsors").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetAll(ctx context.Context, query ListQuery) ([]Event, error) {
	var list []Event
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Sponsors").
		Order("id ASC").
		Offset(query.Skip).
		Limit(query.Limit).
		Find(&list).Error
	return list, err
}

// Delete removes the event with its tiers, sponsor links, bookings and
// ledger. Foreign keys are not enforced at the database level, so the
// cascade is explicit.
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if err := tx.Model(&event).Association("Sponsors").Clear(); err != nil {
			return fmt.Errorf("failed to unlink sponsors: %w", err)
		}
		if err := tx.Exec("DELETE FROM ledger_blocks WHERE event_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete ledger: %w", err)
		}
		if err := tx.Exec("DELETE FROM bookings WHERE event_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete bookings: %w", err)
		}
		if err := tx.Where("event_id = ?", id).Delete(&Tier{}).Error; err != nil {
			return fmt.Errorf("failed to delete tiers: %w", err)
		}
		if err := tx.Delete(&event).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}

func (r *repository) Collections(ctx context.Context, eventIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		EventID uint
		Total   float64
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("event_id, COALESCE(SUM(price_paid), 0) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.EventID] = row.Total
	}
	return out, nil
}

// LockEvent loads the event row FOR UPDATE so concurrent bookings for the
// same event serialize. SQLite ignores the locking clause and serializes
// writers on its own.
func (r *repository) LockEvent(ctx context.Context, id uint) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetTier(ctx context.Context, tierID uint) (*Tier, error) {
	var tier Tier
	err := r.db.WithContext(ctx).First(&tier, tierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) SeatsSold(ctx context.Context, eventID uint) (int, error) {
	var sold int64
	err := r.db.WithContext(ctx).
		Model(&Tier{}).
		Select("COALESCE(SUM(seats_sold), 0)").
		Where("event_id = ?", eventID).
		Scan(&sold).Error
	return int(sold), err
}

// RecordSale adds qty to the tier's sold count and moves its price to
// unitPrice. The update only applies while seats remain, so a racing
// writer cannot oversell.
func (r *repository) RecordSale(ctx context.Context, tierID uint, qty int, unitPrice float64) error {
	result := r.db.WithContext(ctx).
		Model(&Tier{}).
		Where("id = ? AND seats_sold + ? <= total_seats", tierID, qty).
		Updates(map[string]interface{}{
			"seats_sold": gorm.Expr("seats_sold + ?", qty),
			"price":      unitPrice,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientSeats
	}
	return nil
}
