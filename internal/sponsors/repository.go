package sponsors

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, sponsor *Sponsor) error
	GetAll(ctx context.Context) ([]Sponsor, error)
	GetByName(ctx context.Context, name string) (*Sponsor, error)
	GetByIDs(ctx context.Context, ids []uint) ([]Sponsor, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sponsor *Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

func (r *repository) GetAll(ctx context.Context) ([]Sponsor, error) {
	var list []Sponsor
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repository) GetByName(ctx context.Context, name string) (*Sponsor, error) {
	var sponsor Sponsor
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&sponsor).Error; err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uint) ([]Sponsor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []Sponsor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}
