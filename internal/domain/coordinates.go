package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as "lat,lng" for external API compatibility.
func (c Coordinates) LatLngString() string { return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng) }

// IsZero reports whether the coordinates are unset.
func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lng == 0 }
