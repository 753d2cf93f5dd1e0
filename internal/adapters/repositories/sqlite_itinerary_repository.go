package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"itinerary-planner-service/internal/domain"
)

// SQLite-backed implementation of the ItineraryRepository port.
// Itineraries are immutable once planned, so rows store the whole plan as a
// JSON payload rather than a relational breakdown.
type SqliteItineraryRepository struct{ DB *sql.DB }

func NewSqliteItineraryRepository(db *sql.DB) *SqliteItineraryRepository {
	return &SqliteItineraryRepository{DB: db}
}

// Store a planned itinerary.
func (s *SqliteItineraryRepository) SaveItinerary(ctx context.Context, it *domain.Itinerary) error {
	if s.DB == nil {
		return errors.New("sqlite itinerary repository: DB is nil")
	}
	if it == nil || it.ID == "" {
		return errors.New("save itinerary: itinerary with id is required")
	}

	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("save itinerary: encode payload: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO itineraries (
		id,
		city_slug,
		plan_date,
		payload
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, it.ID, it.CitySlug, it.Date.Format("2006-01-02"), payload); err != nil {
		return fmt.Errorf("save itinerary id=%q: %w", it.ID, err)
	}
	return nil
}

// Return the most recently planned itineraries, newest first.
func (s *SqliteItineraryRepository) ListItineraries(ctx context.Context, limit int) ([]*domain.Itinerary, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite itinerary repository: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT payload
	FROM itineraries
	ORDER BY created_at DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list itineraries: query itineraries table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Itinerary, 0, limit)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list itineraries: scan row: %w", err)
		}
		var it domain.Itinerary
		if err := json.Unmarshal(payload, &it); err != nil {
			return nil, fmt.Errorf("list itineraries: decode payload: %w", err)
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list itineraries: row iteration: %w", err)
	}

	return out, nil
}
