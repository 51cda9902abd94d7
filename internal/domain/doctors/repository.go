package doctors

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByUsername(ctx context.Context, username string) (*Doctor, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Doctor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Doctor, error) {
	var d Doctor
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
