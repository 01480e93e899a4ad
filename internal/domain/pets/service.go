package pets

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
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

// List: catálogo fijo + la entrada custom del usuario si existe.
func (s *Service) List(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := Builtins()

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return out, nil
	}

	c, err := s.repo.GetCustom(ctx, ownerUserID)
	switch {
	case err == nil:
		out = append(out, c)
	case errors.Is(err, ErrNotFound):
	default:
		return nil, err
	}
	return out, nil
}

// Get resuelve un nombre del catálogo (case-insensitive) o la custom del usuario.
func (s *Service) Get(ctx context.Context, ownerUserID, name string) (Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	for _, p := range builtins {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}

	if !strings.EqualFold(name, CustomName) {
		return Pet{}, ErrNotFound
	}
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetCustom(ctx, ownerUserID)
}

type CustomInput struct {
	ModelURL    string
	Description string
	Glyph       string
}

// SetCustom registra (o reemplaza) la mascota custom del usuario.
// El modelo lo genera un pipeline externo; acá solo guardamos el locator.
func (s *Service) SetCustom(ctx context.Context, ownerUserID string, in CustomInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}

	modelURL := strings.TrimSpace(in.ModelURL)
	u, err := url.ParseRequestURI(modelURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		Name:        CustomName,
		Glyph:       strings.TrimSpace(in.Glyph),
		Description: strings.TrimSpace(in.Description),
		Trait:       "Unique",
		Custom:      true,
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		ModelURL:    modelURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Glyph == "" {
		p.Glyph = "✨"
	}
	if p.Description == "" {
		p.Description = "Your very own pet, created from a photo."
	}

	// Reemplazo: conservamos ID/CreatedAt de la anterior.
	if prev, err := s.repo.GetCustom(ctx, ownerUserID); err == nil {
		p.ID = prev.ID
		p.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return Pet{}, err
	}

	if err := s.repo.SaveCustom(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
