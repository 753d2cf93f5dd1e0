package domain

// Transport modes supported by the planner.
type TransportMode string

const (
	ModeWalking TransportMode = "walking"
	ModeTransit TransportMode = "transit"
	ModeDriving TransportMode = "driving"
	ModeCycling TransportMode = "cycling"
)

// modePreference breaks ties between equally fast modes: walking is preferred
// for short, low-effort transitions, cycling last.
var modePreference = []TransportMode{ModeWalking, ModeTransit, ModeDriving, ModeCycling}

// Travel time between two areas, per mode. Zero minutes means the mode is
// unavailable for that pair. Immutable once computed; directional (A->B may
// differ from B->A even though the tuned data currently is symmetric).
type TravelEstimate struct {
	WalkingMinutes  int           `json:"walking_minutes"`
	TransitMinutes  int           `json:"transit_minutes"`
	DrivingMinutes  int           `json:"driving_minutes"`
	CyclingMinutes  int           `json:"cycling_minutes,omitempty"`
	RecommendedMode TransportMode `json:"recommended_mode"`
	TransitDetails  string        `json:"transit_details,omitempty"`
}

// MinutesByMode returns the minutes for a single mode (0 if unavailable).
func (e TravelEstimate) MinutesByMode(mode TransportMode) int {
	switch mode {
	case ModeWalking:
		return e.WalkingMinutes
	case ModeTransit:
		return e.TransitMinutes
	case ModeDriving:
		return e.DrivingMinutes
	case ModeCycling:
		return e.CyclingMinutes
	default:
		return 0
	}
}

// RecommendedMinutes returns the minutes for the recommended mode.
func (e TravelEstimate) RecommendedMinutes() int {
	return e.MinutesByMode(e.RecommendedMode)
}

// RecommendMode selects the fastest available mode, breaking ties in the
// fixed preference order walking < transit < driving < cycling.
func (e TravelEstimate) RecommendMode() TransportMode {
	best := TransportMode("")
	bestMinutes := 0
	for _, mode := range modePreference {
		m := e.MinutesByMode(mode)
		if m <= 0 {
			continue
		}
		if best == "" || m < bestMinutes {
			best = mode
			bestMinutes = m
		}
	}
	if best == "" {
		return ModeTransit
	}
	return best
}
