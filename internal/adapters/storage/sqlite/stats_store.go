package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-companion/internal/domain/care"
)

type StatsStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db, now: time.Now}
}

func (s *StatsStore) Load(ctx context.Context, userID, petName string) (care.Record, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hunger, happiness, health, energy, level, xp, xp_to_next_level, updated_at_ms
		FROM pet_stats
		WHERE user_id = ? AND pet_name = ?
	`, userID, petName)

	var rec care.Record
	var updatedMs int64
	if err := row.Scan(
		&rec.Hunger,
		&rec.Happiness,
		&rec.Health,
		&rec.Energy,
		&rec.Level,
		&rec.XP,
		&rec.XPToNextLevel,
		&updatedMs,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return care.Record{}, false, nil
		}
		return care.Record{}, false, fmt.Errorf("load pet stats: %w", err)
	}
	rec.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return rec, true, nil
}

func (s *StatsStore) Save(ctx context.Context, userID, petName string, rec care.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pet_stats (
			user_id, pet_name, hunger, happiness, health, energy,
			level, xp, xp_to_next_level, updated_at_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, pet_name) DO UPDATE SET
			hunger = excluded.hunger,
			happiness = excluded.happiness,
			health = excluded.health,
			energy = excluded.energy,
			level = excluded.level,
			xp = excluded.xp,
			xp_to_next_level = excluded.xp_to_next_level,
			updated_at_ms = excluded.updated_at_ms
	`,
		userID, petName,
		rec.Hunger, rec.Happiness, rec.Health, rec.Energy,
		rec.Level, rec.XP, rec.XPToNextLevel,
		s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save pet stats: %w", err)
	}
	return nil
}
