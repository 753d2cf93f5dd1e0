package ports

import (
	"context"
	"errors"
	"fmt"

	"itinerary-planner-service/internal/domain"
)

// A venue search issued for a single activity entry.
type VenueQuery struct {
	Type           string
	Keywords       []string
	LocationBias   domain.Coordinates
	PreferenceText string
}

// Ranked search results: the provider's best match plus alternatives.
type VenueResults struct {
	Primary      domain.Venue   `json:"primary"`
	Alternatives []domain.Venue `json:"alternatives"`
}

// All returns primary followed by alternatives.
func (r VenueResults) All() []domain.Venue {
	out := make([]domain.Venue, 0, 1+len(r.Alternatives))
	out = append(out, r.Primary)
	out = append(out, r.Alternatives...)
	return out
}

// Contract for the external venue search provider.
type VenueSearcher interface {
	Search(ctx context.Context, q VenueQuery) (VenueResults, error)
}

// NoResultsError signals that nothing matched the query. It is a per-entry
// miss, not a failure that aborts the whole plan.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string { return fmt.Sprintf("no venues found for %q", e.Query) }

// IsNoResults reports whether err is (or wraps) a NoResultsError.
func IsNoResults(err error) bool {
	var nre *NoResultsError
	return errors.As(err, &nre)
}

// Cache boundary for venue search results, keyed by a normalized query key.
// Backends: SQLite, Postgres, Redis.
type VenueCache interface {
	Get(ctx context.Context, key string) (VenueResults, bool, error)
	Put(ctx context.Context, key string, results VenueResults) error
}
