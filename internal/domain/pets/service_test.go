package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byOwner map[string]Pet
	getErr  error
}

func newTestRepo() *testRepo {
	return &testRepo{byOwner: map[string]Pet{}}
}

func (r *testRepo) GetCustom(ctx context.Context, ownerUserID string) (Pet, error) {
	if r.getErr != nil {
		return Pet{}, r.getErr
	}
	p, ok := r.byOwner[ownerUserID]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) SaveCustom(ctx context.Context, p Pet) error {
	r.byOwner[p.OwnerUserID] = p
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_List_BuiltinsInFixedOrder(t *testing.T) {
	svc := NewService(newTestRepo())

	items, err := svc.List(context.Background(), "device-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"Bunny", "Kitty", "Puppy", "Dragon", "Fox", "Owl"}
	if len(items) != len(want) {
		t.Fatalf("expected %d pets, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, items[i].Name)
		}
	}
}

func TestService_SetCustom_AppendsCustomEntry(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.SetCustom(context.Background(), "device-1", CustomInput{ModelURL: "https://cdn.example.com/pets/abc.glb"})
	if err != nil {
		t.Fatalf("SetCustom error: %v", err)
	}
	if p.Name != CustomName || !p.Custom || p.ID == "" {
		t.Fatalf("unexpected custom pet: %#v", p)
	}

	items, _ := svc.List(context.Background(), "device-1")
	if len(items) != 7 || items[6].Name != CustomName {
		t.Fatalf("expected custom entry last, got %#v", items)
	}

	// otro device no la ve
	others, _ := svc.List(context.Background(), "device-2")
	if len(others) != 6 {
		t.Fatalf("custom pet leaked to another device")
	}
}

func TestService_SetCustom_ReplaceKeepsIdentity(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)

	svc.now = func() time.Time { return now1 }
	p1, err := svc.SetCustom(context.Background(), "device-1", CustomInput{ModelURL: "https://cdn.example.com/a.glb"})
	if err != nil {
		t.Fatalf("SetCustom #1 error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	p2, err := svc.SetCustom(context.Background(), "device-1", CustomInput{ModelURL: "https://cdn.example.com/b.glb"})
	if err != nil {
		t.Fatalf("SetCustom #2 error: %v", err)
	}

	if p2.ID != p1.ID || p2.CreatedAt != now1 || p2.UpdatedAt != now2 {
		t.Fatalf("expected same identity with new UpdatedAt, got %#v", p2)
	}
	if p2.ModelURL != "https://cdn.example.com/b.glb" {
		t.Fatalf("expected model replaced")
	}
}

func TestService_SetCustom_RejectsBadURL(t *testing.T) {
	svc := NewService(newTestRepo())

	for _, u := range []string{"", "not a url", "ftp://x/y.glb", "/relative.glb"} {
		if _, err := svc.SetCustom(context.Background(), "device-1", CustomInput{ModelURL: u}); err != ErrInvalidInput {
			t.Fatalf("url %q: expected ErrInvalidInput, got %v", u, err)
		}
	}
}

func TestService_Get(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Get(context.Background(), "", "dragon")
	if err != nil || p.Name != "Dragon" {
		t.Fatalf("expected Dragon, got %#v err=%v", p, err)
	}

	if _, err := svc.Get(context.Background(), "device-1", "Custom"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing custom, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "device-1", "Unicorn"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_PropagatesRepoFailure(t *testing.T) {
	repo := newTestRepo()
	repo.getErr = errors.New("db down")
	svc := NewService(repo)

	if _, err := svc.List(context.Background(), "device-1"); err == nil {
		t.Fatalf("expected error")
	}
}
