package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-companion/internal/domain/activity"
)

type activityRepo struct {
	mu   sync.RWMutex
	byID map[string]activity.Entry
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{
		byID: make(map[string]activity.Entry),
	}
}

func (r *activityRepo) Create(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *activityRepo) ListByPet(ctx context.Context, userID, petName string, limit int) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = activity.DefaultLimit
	}

	out := make([]activity.Entry, 0)
	for _, e := range r.byID {
		if e.UserID == userID && e.PetName == petName {
			out = append(out, e)
		}
	}

	// Más reciente primero; ID desempata entradas del mismo instante.
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
