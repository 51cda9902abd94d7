package patients

import (
	"context"
	"strings"
	"time"
)

// Service contains patient record business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	uniqueID := strings.TrimSpace(req.UniqueID)

	taken, err := s.repo.UniqueIDExists(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateID
	}

	p := &Patient{
		Name:      strings.TrimSpace(req.Name),
		DOB:       strings.TrimSpace(req.DOB),
		UniqueID:  uniqueID,
		Tags:      req.Tags,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*PatientWithFileCount, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Exists satisfies the files subsystem's patient-existence check.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	return s.repo.UniqueIDExists(ctx, strings.TrimSpace(uniqueID))
}
