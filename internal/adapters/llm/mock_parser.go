package llm

import (
	"context"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// MockParser returns canned parse results keyed by the exact query text.
// Unknown queries yield an empty result; set Err to force a failure.
type MockParser struct {
	Responses map[string]ports.ParsedRequest
	Err       error
}

func NewMockParser() *MockParser {
	return &MockParser{Responses: map[string]ports.ParsedRequest{}}
}

func (m *MockParser) Parse(ctx context.Context, text string, city domain.CityConfig) (ports.ParsedRequest, error) {
	if m.Err != nil {
		return ports.ParsedRequest{}, m.Err
	}
	return m.Responses[text], nil
}
