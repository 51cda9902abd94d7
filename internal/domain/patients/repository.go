package patients

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*PatientWithFileCount, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	UniqueIDExists(ctx context.Context, uniqueID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Patient, error) {
	var p Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*PatientWithFileCount, error) {
	var list []*PatientWithFileCount
	err := r.db.WithContext(ctx).
		Table("patients p").
		Select("p.*, COUNT(f.id) AS file_count").
		Joins("LEFT JOIN files f ON f.patient_id = p.id").
		Group("p.id").
		Order("p.id DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Patient{}).Error
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Patient{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Patient{}).Where("unique_id = ?", uniqueID).Count(&count).Error
	return count > 0, err
}
