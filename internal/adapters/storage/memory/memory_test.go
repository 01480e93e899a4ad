package memory

import (
	"context"
	"testing"
	"time"

	"pet-companion/internal/domain/activity"
	"pet-companion/internal/domain/care"
	"pet-companion/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsStore_RoundTripPerUserAndPet(t *testing.T) {
	s := NewStatsStore()
	ctx := context.Background()

	_, found, err := s.Load(ctx, "device-1", "Bunny")
	require.NoError(t, err)
	assert.False(t, found)

	rec := care.RecordOf(care.DefaultStats())
	rec.Hunger = 0.5
	require.NoError(t, s.Save(ctx, "device-1", "Bunny", rec))

	got, found, err := s.Load(ctx, "device-1", "Bunny")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.5, got.Hunger)
	assert.False(t, got.UpdatedAt.IsZero())

	_, found, _ = s.Load(ctx, "device-1", "Kitty")
	assert.False(t, found)
	_, found, _ = s.Load(ctx, "device-2", "Bunny")
	assert.False(t, found)
}

func TestStatsStore_HonoursCancelledContext(t *testing.T) {
	s := NewStatsStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Load(ctx, "device-1", "Bunny")
	assert.Error(t, err)
	assert.Error(t, s.Save(ctx, "device-1", "Bunny", care.Record{}))
}

func TestPetRepo_CustomPerOwner(t *testing.T) {
	r := NewPetRepo()
	ctx := context.Background()

	_, err := r.GetCustom(ctx, "device-1")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	require.NoError(t, r.SaveCustom(ctx, pets.Pet{ID: "p1", Name: pets.CustomName, OwnerUserID: "device-1", ModelURL: "https://x/y.glb"}))

	p, err := r.GetCustom(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	assert.Error(t, r.SaveCustom(ctx, pets.Pet{ID: "p2"}))
}

func TestActivityRepo_ListByPet(t *testing.T) {
	r := NewActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	for i, a := range []string{"feed", "play", "rest"} {
		require.NoError(t, r.Create(ctx, activity.Entry{
			ID: string(rune('a' + i)), UserID: "device-1", PetName: "Fox", Action: a, OccurredAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, r.Create(ctx, activity.Entry{ID: "z", UserID: "device-2", PetName: "Fox", Action: "feed", OccurredAt: base}))

	assert.Error(t, r.Create(ctx, activity.Entry{ID: "a"}), "duplicate id")

	got, err := r.ListByPet(ctx, "device-1", "Fox", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rest", got[0].Action)
	assert.Equal(t, "play", got[1].Action)
}
