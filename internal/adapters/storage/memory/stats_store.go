package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-companion/internal/domain/care"
)

// StatsStore es el store por defecto (dev/tests). Key: user + pet.
type StatsStore struct {
	mu   sync.RWMutex
	data map[statsKey]care.Record
	now  func() time.Time
}

type statsKey struct {
	user string
	pet  string
}

func NewStatsStore() *StatsStore {
	return &StatsStore{
		data: make(map[statsKey]care.Record),
		now:  time.Now,
	}
}

func (s *StatsStore) Load(ctx context.Context, userID, petName string) (care.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return care.Record{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[statsKey{userID, petName}]
	return rec, ok, nil
}

func (s *StatsStore) Save(ctx context.Context, userID, petName string, rec care.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" || petName == "" {
		return errors.New("user id and pet name required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.UpdatedAt = s.now().UTC()
	s.data[statsKey{userID, petName}] = rec
	return nil
}
