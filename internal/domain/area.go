package domain

import "time"

// TimeOfDay buckets crowd levels the way the knowledge base is tuned:
// morning, afternoon, and a single evening-or-night bucket.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// TimeOfDayFor maps a clock time onto a crowd-level bucket.
func TimeOfDayFor(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h < 12:
		return Morning
	case h < 17:
		return Afternoon
	default:
		return Evening
	}
}

// Per time-of-day crowd levels on a 1-5 scale.
// Weekend always overrides the time-of-day bucket when set.
type CrowdLevels struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Weekend   int `json:"weekend"`
}

// At returns the crowd level for the given bucket. On weekends the dedicated
// weekend bucket wins regardless of time of day.
func (c CrowdLevels) At(tod TimeOfDay, weekend bool) int {
	if weekend && c.Weekend > 0 {
		return c.Weekend
	}
	switch tod {
	case Morning:
		return c.Morning
	case Afternoon:
		return c.Afternoon
	default:
		return c.Evening
	}
}

// A named city area in the knowledge base.
//
// Names are unique under lowercase normalization. Neighbors list adjacent
// area names; the relation is symmetric in intent but not guaranteed to be
// populated in both directions, and references to unknown areas degrade to
// the default travel-estimate path rather than failing.
type Area struct {
	Name            string      `json:"name"`
	Coordinates     Coordinates `json:"coordinates"`
	Characteristics []string    `json:"characteristics"`
	PopularFor      []string    `json:"popular_for"`
	CrowdLevels     CrowdLevels `json:"crowd_levels"`
	Neighbors       []string    `json:"neighbors"`
}
