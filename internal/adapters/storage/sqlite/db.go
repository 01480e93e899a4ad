// Package sqlite es el store local de stats (un archivo, sin servidor).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open crea el directorio si hace falta, abre la base y aplica el schema.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializa escrituras; una conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if err := createSchemas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}
	return db, nil
}

func createSchemas(ctx context.Context, db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS pet_stats (
			user_id          TEXT NOT NULL,
			pet_name         TEXT NOT NULL,
			hunger           REAL NOT NULL,
			happiness        REAL NOT NULL,
			health           REAL NOT NULL,
			energy           REAL NOT NULL,
			level            INTEGER NOT NULL,
			xp               INTEGER NOT NULL,
			xp_to_next_level INTEGER NOT NULL,
			updated_at_ms    INTEGER NOT NULL,
			PRIMARY KEY (user_id, pet_name)
		);`,
	}

	for _, q := range schemas {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
