package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVenueCacheQuery := `
	CREATE TABLE IF NOT EXISTS venue_cache (
		query_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`

	createItinerariesQuery := `
	CREATE TABLE IF NOT EXISTS itineraries (
		id TEXT PRIMARY KEY,
		city_slug TEXT NOT NULL,
		plan_date TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_itineraries_created_at
	ON itineraries(created_at);
	`

	statements := []string{
		createVenueCacheQuery,
		createItinerariesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Initialize the Postgres schema for deployments sharing a venue cache.
func InitSchemaPG(db *sql.DB) error {
	if db == nil {
		return errors.New("init pg schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS venue_cache (
		query_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init pg schema: create venue_cache: %w", err)
	}

	return nil
}
