package care

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test store (in-memory)
// -------------------------

type savedCall struct {
	UserID string
	Pet    string
	Record Record
}

type testStore struct {
	mu      sync.Mutex
	records map[string]Record
	saves   []savedCall
	loads   int

	loadErr error
	saveErr error
}

func newTestStore() *testStore {
	return &testStore{records: map[string]Record{}}
}

func (s *testStore) Load(ctx context.Context, userID, petName string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return Record{}, false, s.loadErr
	}
	r, ok := s.records[userID+"/"+petName]
	return r, ok, nil
}

func (s *testStore) Save(ctx context.Context, userID, petName string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, savedCall{UserID: userID, Pet: petName, Record: rec})
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[userID+"/"+petName] = rec
	return nil
}

func (s *testStore) savedCalls() []savedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]savedCall(nil), s.saves...)
}

func newTestEngine(t *testing.T, store Store, opts Options) *Engine {
	t.Helper()
	if opts.TickInterval == 0 {
		opts.TickInterval = time.Hour // ticks manuales salvo que el test pida otra cosa
	}
	if opts.SaveDelay == 0 {
		opts.SaveDelay = time.Hour
	}
	e := NewEngine("device-1", store, opts)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	})
	return e
}

// -------------------------
// Tests
// -------------------------

func TestEngine_Select_NoRecord_UsesDefaults(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{})

	snap, err := e.Select(context.Background(), PetRef{Name: "Bunny"})
	require.NoError(t, err)

	assert.True(t, snap.Active)
	assert.Equal(t, "Bunny", snap.Pet.Name)
	assert.Equal(t, DefaultStats(), snap.Stats)
	assert.Equal(t, MoodGreat, snap.Mood)
	assert.Equal(t, 1, store.loads, "load is single-shot")
}

func TestEngine_Select_LoadsStoredRecordExactly(t *testing.T) {
	store := newTestStore()
	stored := Record{Hunger: 0.5, Happiness: 0.25, Health: 0.75, Energy: 0.1, Level: 3, XP: 240, XPToNextLevel: 100}
	store.records["device-1/Fox"] = stored

	e := newTestEngine(t, store, Options{})
	snap, err := e.Select(context.Background(), PetRef{Name: "Fox"})
	require.NoError(t, err)

	assert.Equal(t, stored.Stats(), snap.Stats)
	assert.Equal(t, MoodUnhappy, snap.Mood)
}

func TestEngine_Select_LoadFailure_FailsOpen(t *testing.T) {
	store := newTestStore()
	store.loadErr = errors.New("store unreachable")

	e := newTestEngine(t, store, Options{})
	snap, err := e.Select(context.Background(), PetRef{Name: "Owl"})
	require.NoError(t, err)

	assert.True(t, snap.Active)
	assert.Equal(t, DefaultStats(), snap.Stats)
}

func TestEngine_Select_MalformedRecord_UsesDefaults(t *testing.T) {
	store := newTestStore()
	store.records["device-1/Owl"] = Record{Hunger: 4, Happiness: 1, Health: 1, Energy: 1, Level: 1, XPToNextLevel: 100}

	e := newTestEngine(t, store, Options{})
	snap, err := e.Select(context.Background(), PetRef{Name: "Owl"})
	require.NoError(t, err)
	assert.Equal(t, DefaultStats(), snap.Stats)
}

func TestEngine_Select_RejectsEmptyName(t *testing.T) {
	e := newTestEngine(t, newTestStore(), Options{})
	_, err := e.Select(context.Background(), PetRef{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngine_ActionsRequireActivePet(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{})

	_, err := e.Feed()
	assert.ErrorIs(t, err, ErrNoActivePet)
	_, err = e.Tick()
	assert.ErrorIs(t, err, ErrNoActivePet)

	assert.False(t, e.Snapshot().Active)
	assert.Empty(t, store.savedCalls())
}

func TestEngine_Act_UnknownAction(t *testing.T) {
	e := newTestEngine(t, newTestStore(), Options{})
	_, err := e.Select(context.Background(), PetRef{Name: "Kitty"})
	require.NoError(t, err)

	_, err = e.Act(Action("dance"))
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, int64(0), e.Snapshot().Saves)
}

func TestEngine_Debounce_CoalescesTickAndFeed(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{SaveDelay: 50 * time.Millisecond})

	_, err := e.Select(context.Background(), PetRef{Name: "Puppy"})
	require.NoError(t, err)

	_, err = e.Tick()
	require.NoError(t, err)
	snap, err := e.Feed()
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Saves, "each trigger bumps the save-counter")

	require.Eventually(t, func() bool { return len(store.savedCalls()) >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	calls := store.savedCalls()
	require.Len(t, calls, 1, "tick+feed within the window must produce one save")
	rec := calls[0].Record
	assert.Equal(t, "Puppy", calls[0].Pet)
	assert.InDelta(t, 1.0, rec.Hunger, eps, "save carries the state after feed")
	assert.InDelta(t, 0.97, rec.Happiness, eps)
	assert.InDelta(t, 0.96, rec.Energy, eps)
	assert.Equal(t, 10, rec.XP)
}

func TestEngine_Debounce_SeparateWindowsSaveTwice(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{SaveDelay: 20 * time.Millisecond})

	_, err := e.Select(context.Background(), PetRef{Name: "Puppy"})
	require.NoError(t, err)

	_, _ = e.Rest()
	require.Eventually(t, func() bool { return len(store.savedCalls()) == 1 }, time.Second, 5*time.Millisecond)

	_, _ = e.Play()
	require.Eventually(t, func() bool { return len(store.savedCalls()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 20, store.savedCalls()[1].Record.XP)
}

func TestEngine_Close_FlushesImmediately_WithPendingDebounce(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{SaveDelay: time.Hour})

	_, err := e.Select(context.Background(), PetRef{Name: "Dragon"})
	require.NoError(t, err)
	_, err = e.Tick()
	require.NoError(t, err)
	assert.Empty(t, store.savedCalls(), "debounced save still pending")

	snap := e.Close(context.Background())
	assert.False(t, snap.Active)

	calls := store.savedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Dragon", calls[0].Pet)
	assert.InDelta(t, 0.95, calls[0].Record.Hunger, eps)

	// el debounce quedó cancelado y no hay mascota activa
	_, err = e.Feed()
	assert.ErrorIs(t, err, ErrNoActivePet)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Shutdown(ctx))
	assert.Len(t, store.savedCalls(), 1)
}

func TestEngine_Close_WithoutActivePetIsNoop(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{})

	snap := e.Close(context.Background())
	assert.False(t, snap.Active)
	assert.Empty(t, store.savedCalls())
}

func TestEngine_SwitchPet_FlushesPreviousAndCancelsItsDebounce(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{SaveDelay: 40 * time.Millisecond})

	_, err := e.Select(context.Background(), PetRef{Name: "Bunny"})
	require.NoError(t, err)
	_, _ = e.Feed()

	snap, err := e.Select(context.Background(), PetRef{Name: "Fox"})
	require.NoError(t, err)
	assert.Equal(t, "Fox", snap.Pet.Name)
	assert.Equal(t, DefaultStats(), snap.Stats, "new pet starts from its own record, not the previous one")

	calls := store.savedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bunny", calls[0].Pet)
	assert.Equal(t, 10, calls[0].Record.XP)

	// la ventana de Bunny vence sin un segundo save
	time.Sleep(120 * time.Millisecond)
	assert.Len(t, store.savedCalls(), 1)
}

func TestEngine_Reselect_SamePet_SeesFlushedStats(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{})

	_, _ = e.Select(context.Background(), PetRef{Name: "Kitty"})
	_, _ = e.Play()
	e.Close(context.Background())

	snap, err := e.Select(context.Background(), PetRef{Name: "Kitty"})
	require.NoError(t, err)
	assert.Equal(t, 15, snap.Stats.XP)
	assert.InDelta(t, 0.9, snap.Stats.Energy, eps)
}

func TestEngine_DecayLoop_TicksWhileActive(t *testing.T) {
	store := newTestStore()
	e := newTestEngine(t, store, Options{TickInterval: 10 * time.Millisecond})

	_, err := e.Select(context.Background(), PetRef{Name: "Owl"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return e.Snapshot().Stats.Hunger <= 0.9
	}, time.Second, 5*time.Millisecond)

	e.Close(context.Background())
	saves := e.Snapshot().Saves
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, saves, e.Snapshot().Saves, "no ticks after close")
}

func TestEngine_SaveFailure_IsNotRetriedUntilNextTrigger(t *testing.T) {
	store := newTestStore()
	store.saveErr = errors.New("write refused")
	e := newTestEngine(t, store, Options{SaveDelay: 10 * time.Millisecond})

	_, _ = e.Select(context.Background(), PetRef{Name: "Bunny"})
	_, _ = e.Clean()

	require.Eventually(t, func() bool { return len(store.savedCalls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, store.savedCalls(), 1, "no internal retry")

	store.mu.Lock()
	store.saveErr = nil
	store.mu.Unlock()

	_, _ = e.Clean()
	require.Eventually(t, func() bool { return len(store.savedCalls()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 20, store.records["device-1/Bunny"].XP)
}

func TestEngine_Subscribe_ReceivesLatestSnapshot(t *testing.T) {
	e := newTestEngine(t, newTestStore(), Options{})
	ch, cancel := e.Subscribe()
	defer cancel()

	_, _ = e.Select(context.Background(), PetRef{Name: "Bunny"})
	_, _ = e.Feed()
	_, _ = e.Play()

	// buffer de 1: queda el último
	select {
	case s := <-ch:
		assert.Equal(t, 25, s.Stats.XP)
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestEngine_ActivePet_ExposesIdentityOnly(t *testing.T) {
	e := newTestEngine(t, newTestStore(), Options{})

	_, ok := e.ActivePet()
	assert.False(t, ok)

	_, _ = e.Select(context.Background(), PetRef{Name: "Custom", ModelURL: "https://cdn.example.com/m.glb"})
	ref, ok := e.ActivePet()
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/m.glb", ref.ModelURL)
}

func TestEngine_Shutdown_RejectsNewSelections(t *testing.T) {
	e := newTestEngine(t, newTestStore(), Options{})
	require.NoError(t, e.Shutdown(context.Background()))

	_, err := e.Select(context.Background(), PetRef{Name: "Bunny"})
	assert.ErrorIs(t, err, ErrShutdown)
}
