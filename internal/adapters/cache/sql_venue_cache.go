package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
)

// SQLVenueCache is a Postgres-backed cache for venue search results, used
// by deployments that share one cache across instances.
type SQLVenueCache struct {
	DB *sql.DB
}

func NewSQLVenueCache(db *sql.DB) *SQLVenueCache {
	return &SQLVenueCache{DB: db}
}

// Fetch the cached results for one query key.
func (s *SQLVenueCache) Get(ctx context.Context, key string) (_ ports.VenueResults, _ bool, err error) {
	defer obs.Time(ctx, "venue.cache.Get")(&err)

	if s.DB == nil {
		return ports.VenueResults{}, false, errors.New("venue cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return ports.VenueResults{}, false, errors.New("get venue cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM venue_cache
	WHERE query_key = $1;
	`

	var payload []byte
	scanErr := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return ports.VenueResults{}, false, nil
	}
	if scanErr != nil {
		return ports.VenueResults{}, false, fmt.Errorf("get venue cache: query venue_cache table: %w", scanErr)
	}

	var out ports.VenueResults
	if err := json.Unmarshal(payload, &out); err != nil {
		return ports.VenueResults{}, false, fmt.Errorf("get venue cache: decode payload: %w", err)
	}
	return out, true, nil
}

// Store results for one query key.
func (s *SQLVenueCache) Put(ctx context.Context, key string, results ports.VenueResults) error {
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
	INSERT INTO venue_cache (query_key, payload)
	VALUES ($1, $2)
	ON CONFLICT (query_key) DO UPDATE
	SET payload = EXCLUDED.payload;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert venue cache key=%q: %w", key, err)
	}
	return nil
}
