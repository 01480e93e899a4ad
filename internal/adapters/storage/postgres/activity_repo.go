package postgres

import (
	"context"
	"database/sql"

	"pet-companion/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Create(ctx context.Context, e activity.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_activity (
			id, user_id, pet_name,
			action, xp_gained, occurred_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		e.UserID,
		e.PetName,
		e.Action,
		e.XPGained,
		e.OccurredAt,
	)
	return err
}

func (r *ActivityRepo) ListByPet(ctx context.Context, userID, petName string, limit int) ([]activity.Entry, error) {
	if limit <= 0 {
		limit = activity.DefaultLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, pet_name, action, xp_gained, occurred_at
		FROM care_activity
		WHERE user_id = $1 AND pet_name = $2
		ORDER BY occurred_at DESC, id DESC
		LIMIT $3
	`, userID, petName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.PetName,
			&e.Action,
			&e.XPGained,
			&e.OccurredAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
