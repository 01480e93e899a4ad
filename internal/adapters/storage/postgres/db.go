package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS pet_stats (
			user_id          TEXT NOT NULL,
			pet_name         TEXT NOT NULL,
			hunger           DOUBLE PRECISION NOT NULL,
			happiness        DOUBLE PRECISION NOT NULL,
			health           DOUBLE PRECISION NOT NULL,
			energy           DOUBLE PRECISION NOT NULL,
			level            INTEGER NOT NULL,
			xp               INTEGER NOT NULL,
			xp_to_next_level INTEGER NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, pet_name)
		)`,
		`CREATE TABLE IF NOT EXISTS custom_pets (
			owner_user_id TEXT PRIMARY KEY,
			id            TEXT NOT NULL,
			glyph         TEXT NOT NULL,
			description   TEXT NOT NULL,
			model_url     TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS care_activity (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			pet_name    TEXT NOT NULL,
			action      TEXT NOT NULL,
			xp_gained   INTEGER NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_care_activity_pet ON care_activity (user_id, pet_name, occurred_at DESC)`,
	}

	for _, q := range schemas {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
