package ports

import (
	"context"

	"itinerary-planner-service/internal/domain"
)

// Port: a boundary for persisting and retrieving planned itineraries.
type ItineraryRepository interface {
	// Store a planned itinerary.
	SaveItinerary(ctx context.Context, it *domain.Itinerary) error
	// Retrieve the most recently planned itineraries, newest first.
	ListItineraries(ctx context.Context, limit int) ([]*domain.Itinerary, error)
}
