package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-companion/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) GetCustom(ctx context.Context, ownerUserID string) (pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			glyph, description, model_url,
			created_at, updated_at
		FROM custom_pets
		WHERE owner_user_id = $1
	`, ownerUserID)

	p := pets.Pet{Name: pets.CustomName, Trait: "Unique", Custom: true}
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Glyph,
		&p.Description,
		&p.ModelURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

// SaveCustom reemplaza la custom del owner (una por owner).
func (r *PetsRepo) SaveCustom(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO custom_pets (
			owner_user_id, id,
			glyph, description, model_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (owner_user_id) DO UPDATE SET
			id = EXCLUDED.id,
			glyph = EXCLUDED.glyph,
			description = EXCLUDED.description,
			model_url = EXCLUDED.model_url,
			updated_at = EXCLUDED.updated_at
	`,
		p.OwnerUserID,
		p.ID,
		p.Glyph,
		p.Description,
		p.ModelURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}
