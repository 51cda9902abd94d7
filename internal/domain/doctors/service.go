package doctors

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type jwtService interface {
	GenerateToken(doctorID int64) (string, error)
}

// Service contains registration and login logic for doctors.
type Service struct {
	repo Repository
	jwt  jwtService
}

func NewService(repo Repository, jwt jwtService) *Service {
	return &Service{repo: repo, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Doctor, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrDoctorExists
	} else if !errors.Is(err, ErrInvalidCredentials) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	d := &Doctor{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Login verifies credentials and issues a bearer token carrying the doctor id.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *Doctor, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	d, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(d.ID)
	if err != nil {
		return "", nil, err
	}
	return token, d, nil
}
