package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"itinerary-planner-service/internal/ports"
)

// SQLite backed cache for venue search results. Keys are expected to be
// consistent (e.g., already normalized) by the caller; payloads are stored
// as JSON.
type SqliteVenueCache struct {
	DB *sql.DB
}

func NewSqliteVenueCache(db *sql.DB) *SqliteVenueCache {
	return &SqliteVenueCache{DB: db}
}

// Fetch the cached results for one query key.
func (s *SqliteVenueCache) Get(ctx context.Context, key string) (ports.VenueResults, bool, error) {
	if s.DB == nil {
		return ports.VenueResults{}, false, errors.New("venue cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return ports.VenueResults{}, false, errors.New("get venue cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM venue_cache
	WHERE query_key = ?;
	`

	var payload []byte
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.VenueResults{}, false, nil
	}
	if err != nil {
		return ports.VenueResults{}, false, fmt.Errorf("get venue cache: query venue_cache table: %w", err)
	}

	var out ports.VenueResults
	if err := json.Unmarshal(payload, &out); err != nil {
		return ports.VenueResults{}, false, fmt.Errorf("get venue cache: decode payload: %w", err)
	}
	return out, true, nil
}

// Store results for one query key.
func (s *SqliteVenueCache) Put(ctx context.Context, key string, results ports.VenueResults) error {
	if s.DB == nil {
		return errors.New("venue cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert venue cache: key must not be empty")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("insert venue cache: encode payload: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO venue_cache (
		query_key,
		payload
	)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert venue cache key=%q: %w", key, err)
	}
	return nil
}
