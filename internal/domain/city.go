package domain

// Static per-city configuration loaded at startup. Read-only after load.
type CityConfig struct {
	Slug            string              `json:"slug"`
	Name            string              `json:"name"`
	Timezone        string              `json:"timezone"`
	DefaultLocation Coordinates         `json:"default_location"`
	DefaultArea     string              `json:"default_area"`
	TransportModes  []TransportMode     `json:"transport_modes"`
	// CategoryVocabulary maps an activity word ("coffee") onto the venue
	// types the search provider understands ("cafe", "coffee_shop").
	CategoryVocabulary map[string][]string `json:"category_vocabulary"`
}
