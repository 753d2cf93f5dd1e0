package domain

import (
	"fmt"
	"time"
)

// An ActivityEntry enriched with its resolved area, chosen venue, and
// computed absolute schedule. Created once during assembly and immutable
// thereafter.
type ResolvedActivity struct {
	Entry      ActivityEntry   `json:"entry"`
	AreaName   string          `json:"area"`
	Venue      Venue           `json:"venue"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	TravelFrom *TravelEstimate `json:"travel_from_previous,omitempty"`
}

// An ordered, travel-time-aware schedule for a single day.
// Items are sorted by StartTime; dropped entries are reported alongside
// rather than failing the whole plan.
type Itinerary struct {
	ID       string             `json:"id"`
	CitySlug string             `json:"city"`
	Date     time.Time          `json:"date"`
	Items    []ResolvedActivity `json:"items"`
	Dropped  []DroppedEntry     `json:"dropped,omitempty"`
}

// TravelMinutesFunc reports required travel minutes between two areas.
type TravelMinutesFunc func(fromArea, toArea string) int

// Validate checks the scheduling invariant: items sorted by start time, and
// for every consecutive pair the later entry starts no earlier than the
// earlier entry's end plus the required travel buffer.
func (it *Itinerary) Validate(travelMinutes TravelMinutesFunc) error {
	for i := 1; i < len(it.Items); i++ {
		prev := it.Items[i-1]
		cur := it.Items[i]

		if cur.StartTime.Before(prev.StartTime) {
			return fmt.Errorf(
				"validate itinerary: %q at %s starts before %q at %s",
				cur.Entry.Activity, cur.StartTime.Format("15:04"),
				prev.Entry.Activity, prev.StartTime.Format("15:04"),
			)
		}

		buffer := time.Duration(travelMinutes(prev.AreaName, cur.AreaName)) * time.Minute
		if cur.StartTime.Before(prev.EndTime.Add(buffer)) {
			return fmt.Errorf(
				"validate itinerary: %q starts at %s, before %q ends (%s) plus %s travel",
				cur.Entry.Activity, cur.StartTime.Format("15:04"),
				prev.Entry.Activity, prev.EndTime.Format("15:04"), buffer,
			)
		}
	}
	return nil
}
