package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-companion/internal/domain/care"
)

// StatsStore guarda un registro por (user_id, pet_name); Save es upsert.
type StatsStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db, now: time.Now}
}

func (s *StatsStore) Load(ctx context.Context, userID, petName string) (care.Record, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			hunger, happiness, health, energy,
			level, xp, xp_to_next_level,
			updated_at
		FROM pet_stats
		WHERE user_id = $1 AND pet_name = $2
	`, userID, petName)

	var rec care.Record
	if err := row.Scan(
		&rec.Hunger,
		&rec.Happiness,
		&rec.Health,
		&rec.Energy,
		&rec.Level,
		&rec.XP,
		&rec.XPToNextLevel,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return care.Record{}, false, nil
		}
		return care.Record{}, false, fmt.Errorf("load pet stats: %w", err)
	}
	return rec, true, nil
}

func (s *StatsStore) Save(ctx context.Context, userID, petName string, rec care.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pet_stats (
			user_id, pet_name,
			hunger, happiness, health, energy,
			level, xp, xp_to_next_level,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (user_id, pet_name) DO UPDATE SET
			hunger = EXCLUDED.hunger,
			happiness = EXCLUDED.happiness,
			health = EXCLUDED.health,
			energy = EXCLUDED.energy,
			level = EXCLUDED.level,
			xp = EXCLUDED.xp,
			xp_to_next_level = EXCLUDED.xp_to_next_level,
			updated_at = EXCLUDED.updated_at
	`,
		userID,
		petName,
		rec.Hunger,
		rec.Happiness,
		rec.Health,
		rec.Energy,
		rec.Level,
		rec.XP,
		rec.XPToNextLevel,
		s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save pet stats: %w", err)
	}
	return nil
}
