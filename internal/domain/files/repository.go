package files

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id int64) (*File, error)
	Delete(ctx context.Context, id int64) error
	ListByPatientID(ctx context.Context, patientID int64) ([]*File, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&File{}).Error
}

func (r *repository) ListByPatientID(ctx context.Context, patientID int64) ([]*File, error) {
	var list []*File
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("uploaded_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
