package knowledge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"itinerary-planner-service/internal/domain"

	"github.com/ringsaturn/tzf"
)

// On-disk shape of a city seed file (see data/seeds/london.json).
type citySeed struct {
	City      domain.CityConfig `json:"city"`
	Areas     []domain.Area     `json:"areas"`
	Aliases   map[string]string `json:"aliases"`
	Landmarks map[string]string `json:"landmarks"`
	Travel    []TunedEstimate   `json:"travel_estimates"`
}

// Load reads a city seed file and builds the immutable knowledge snapshot.
// The seed is validated up front; a missing timezone is derived from the
// city's default coordinates.
func Load(path string) (domain.CityConfig, *Base, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.CityConfig{}, nil, fmt.Errorf("load knowledge: read %q: %w", path, err)
	}

	var seed citySeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return domain.CityConfig{}, nil, fmt.Errorf("load knowledge: parse %q: %w", path, err)
	}

	if err := validateSeed(&seed); err != nil {
		return domain.CityConfig{}, nil, fmt.Errorf("load knowledge: validate %q: %w", path, err)
	}

	if seed.City.Timezone == "" {
		tz, err := timezoneFor(seed.City.DefaultLocation)
		if err != nil {
			return domain.CityConfig{}, nil, fmt.Errorf("load knowledge: derive timezone: %w", err)
		}
		seed.City.Timezone = tz
	}

	base := NewBase(seed.Areas, seed.Aliases, seed.Landmarks, seed.Travel)

	// Broken neighbor references degrade at query time; surface them once at
	// load so tuning mistakes are visible in the logs.
	for _, a := range seed.Areas {
		for _, n := range a.Neighbors {
			if _, ok := base.Area(n); !ok {
				log.Printf("knowledge: area %q lists unknown neighbor %q", a.Name, n)
			}
		}
	}

	return seed.City, base, nil
}

func validateSeed(seed *citySeed) error {
	if strings.TrimSpace(seed.City.Slug) == "" {
		return fmt.Errorf("city slug is required")
	}
	if seed.City.DefaultLocation.IsZero() {
		return fmt.Errorf("city default_location is required")
	}
	if len(seed.Areas) == 0 {
		return fmt.Errorf("at least one area is required")
	}

	seen := make(map[string]struct{}, len(seed.Areas))
	for i, a := range seed.Areas {
		key := Normalize(a.Name)
		if key == "" {
			return fmt.Errorf("area #%d has an empty name", i+1)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate area name %q", a.Name)
		}
		seen[key] = struct{}{}
	}

	if seed.City.DefaultArea != "" {
		if _, ok := seen[Normalize(seed.City.DefaultArea)]; !ok {
			return fmt.Errorf("default_area %q is not a known area", seed.City.DefaultArea)
		}
	}

	for _, t := range seed.Travel {
		if Normalize(t.From) == "" || Normalize(t.To) == "" {
			return fmt.Errorf("travel estimate with empty endpoint (%q -> %q)", t.From, t.To)
		}
	}

	return nil
}

func timezoneFor(c domain.Coordinates) (string, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return "", fmt.Errorf("init timezone finder: %w", err)
	}
	tz := finder.GetTimezoneName(c.Lng, c.Lat)
	if tz == "" {
		return "", fmt.Errorf("no timezone for %s", c.LatLngString())
	}
	return tz, nil
}
