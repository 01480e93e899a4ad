package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	UserID   string
	PetName  string
	Action   string
	XPGained int
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Entry, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.PetName = strings.TrimSpace(in.PetName)
	in.Action = strings.TrimSpace(in.Action)
	if in.UserID == "" || in.PetName == "" || in.Action == "" || in.XPGained < 0 {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		PetName:    in.PetName,
		Action:     in.Action,
		XPGained:   in.XPGained,
		OccurredAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListByPet: limit <= 0 usa DefaultLimit; se acota a MaxLimit.
func (s *Service) ListByPet(ctx context.Context, userID, petName string, limit int) ([]Entry, error) {
	userID = strings.TrimSpace(userID)
	petName = strings.TrimSpace(petName)
	if userID == "" || petName == "" {
		return nil, ErrInvalidInput
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.repo.ListByPet(ctx, userID, petName, limit)
}
