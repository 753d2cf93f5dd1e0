package domain

// A concrete venue returned by the search provider.
// Categories are free-form provider tags ("cafe", "park", "art_gallery").
type Venue struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Categories  []string    `json:"categories"`
	Rating      float64     `json:"rating,omitempty"`
}
