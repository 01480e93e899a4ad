package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-companion/internal/domain/pets"
)

type petRepo struct {
	mu      sync.RWMutex
	byOwner map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byOwner: make(map[string]pets.Pet),
	}
}

func (r *petRepo) GetCustom(ctx context.Context, ownerUserID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byOwner[strings.TrimSpace(ownerUserID)]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) SaveCustom(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner := strings.TrimSpace(p.OwnerUserID)
	if owner == "" {
		return errors.New("owner user id required")
	}
	if p.ID == "" {
		return errors.New("pet id required")
	}
	r.byOwner[owner] = p
	return nil
}
