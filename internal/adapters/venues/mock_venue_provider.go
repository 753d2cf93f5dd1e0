package venues

import (
	"context"
	"strings"

	"itinerary-planner-service/internal/ports"
)

// MockResult binds a keyword to canned search results.
type MockResult struct {
	Keyword string
	Results ports.VenueResults
}

// MockVenueProvider serves canned results for queries whose text contains a
// configured keyword. Queries with no match return NoResultsError.
type MockVenueProvider struct {
	results []MockResult
}

func NewMockVenueProvider(results []MockResult) *MockVenueProvider {
	return &MockVenueProvider{results: results}
}

func (m *MockVenueProvider) Search(ctx context.Context, q ports.VenueQuery) (ports.VenueResults, error) {
	text := strings.ToLower(strings.Join(append([]string{q.Type, q.PreferenceText}, q.Keywords...), " "))
	for _, r := range m.results {
		if strings.Contains(text, strings.ToLower(r.Keyword)) {
			return r.Results, nil
		}
	}
	return ports.VenueResults{}, &ports.NoResultsError{Query: text}
}
