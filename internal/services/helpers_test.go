package services

import (
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"
)

// Shared three-area city for service tests: Riverside is quiet and
// coffee-oriented, Old Town is the central default, Docklands is the
// lively evening quarter. Only Old Town <-> Riverside has tuned travel.
func newTestKB() *knowledge.Base {
	areas := []domain.Area{
		{
			Name:            "Riverside",
			Coordinates:     domain.Coordinates{Lat: 51.51, Lng: -0.12},
			Characteristics: []string{"quiet", "riverside"},
			PopularFor:      []string{"coffee", "brunch", "walk"},
			CrowdLevels:     domain.CrowdLevels{Morning: 1, Afternoon: 2, Evening: 2, Weekend: 3},
			Neighbors:       []string{"Old Town"},
		},
		{
			Name:            "Old Town",
			Coordinates:     domain.Coordinates{Lat: 51.52, Lng: -0.11},
			Characteristics: []string{"historic", "lively"},
			PopularFor:      []string{"museum", "dinner"},
			CrowdLevels:     domain.CrowdLevels{Morning: 2, Afternoon: 3, Evening: 4, Weekend: 4},
		},
		{
			Name:            "Docklands",
			Coordinates:     domain.Coordinates{Lat: 51.50, Lng: -0.02},
			Characteristics: []string{"nightlife", "trendy"},
			PopularFor:      []string{"drinks", "dinner"},
			CrowdLevels:     domain.CrowdLevels{Morning: 2, Afternoon: 3, Evening: 5, Weekend: 5},
			Neighbors:       []string{"Old Town"},
		},
	}

	aliases := map[string]string{"the docks": "Docklands"}
	landmarks := map[string]string{"old bridge": "Riverside"}
	tuned := []knowledge.TunedEstimate{
		{
			From: "Old Town",
			To:   "Riverside",
			Estimate: domain.TravelEstimate{
				WalkingMinutes: 10,
				TransitMinutes: 12,
				DrivingMinutes: 15,
			},
		},
	}

	return knowledge.NewBase(areas, aliases, landmarks, tuned)
}

func testCity() domain.CityConfig {
	return domain.CityConfig{
		Slug:            "testville",
		Name:            "Testville",
		Timezone:        "UTC",
		DefaultLocation: domain.Coordinates{Lat: 51.5, Lng: -0.1},
		DefaultArea:     "Old Town",
		CategoryVocabulary: map[string][]string{
			"coffee": {"cafe"},
			"museum": {"museum"},
			"dinner": {"restaurant"},
			"walk":   {"park"},
		},
	}
}

func venue(name string, categories ...string) domain.Venue {
	return domain.Venue{Name: name, Address: name + " St 1", Categories: categories}
}
