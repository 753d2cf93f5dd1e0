package domain

// EntryKind distinguishes entries anchored to an explicit clock time from
// entries ordered only relative to their mention sequence.
type EntryKind string

const (
	KindFixed    EntryKind = "fixed"
	KindFlexible EntryKind = "flexible"
)

// A single activity extracted from the user's request.
//
// Fixed entries carry a 24h clock time ("19:00") in Time; flexible entries
// carry the raw relative descriptor ("afterwards", "before that") or nothing.
// AfterFixed records a flexible entry's mention position: the count of fixed
// entries mentioned before it, so it equals the 1-based index of its nearest
// preceding fixed anchor (0 means mentioned before any anchor). Entries are
// never mutated after parsing; downstream stages attach resolved data in a
// separate ResolvedActivity record.
type ActivityEntry struct {
	Activity        string    `json:"activity"`
	Location        string    `json:"location,omitempty"`
	Time            string    `json:"time,omitempty"`
	VenuePreference string    `json:"venue_preference,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	AfterFixed      int       `json:"after_fixed,omitempty"`
	Kind            EntryKind `json:"kind"`
}

// EntryState tracks an entry through the assembly pipeline.
type EntryState string

const (
	StateUnresolved       EntryState = "unresolved"
	StateLocationResolved EntryState = "location_resolved"
	StateVenueSelected    EntryState = "venue_selected"
	StateWeatherChecked   EntryState = "weather_checked"
	StatePlaced           EntryState = "placed"
	StateDropped          EntryState = "dropped"
)

// An entry that could not be placed, with the reason it was dropped.
type DroppedEntry struct {
	Entry  ActivityEntry `json:"entry"`
	Reason string        `json:"reason"`
}
