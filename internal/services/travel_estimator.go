package services

import (
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"
)

// Fallback estimates for pairs absent from the tuned table. Neighboring
// areas get a short walk-dominant figure; distinct non-adjacent areas get a
// transit-dominant cross-town figure; anything involving an unknown area
// gets the conservative city-wide default.
var (
	neighborEstimate = domain.TravelEstimate{
		WalkingMinutes:  12,
		TransitMinutes:  15,
		DrivingMinutes:  15,
		RecommendedMode: domain.ModeWalking,
	}
	crossAreaEstimate = domain.TravelEstimate{
		WalkingMinutes:  60,
		TransitMinutes:  25,
		DrivingMinutes:  30,
		RecommendedMode: domain.ModeTransit,
	}
	unknownAreaEstimate = domain.TravelEstimate{
		WalkingMinutes:  75,
		TransitMinutes:  35,
		DrivingMinutes:  40,
		RecommendedMode: domain.ModeTransit,
	}
)

// TravelEstimator answers travel-time questions over the knowledge snapshot.
//
// Estimate is total: it always returns a well-formed estimate, degrading
// tier by tier instead of failing, so the assembler can always place a
// travel buffer.
type TravelEstimator struct {
	KB *knowledge.Base
}

func NewTravelEstimator(kb *knowledge.Base) *TravelEstimator {
	return &TravelEstimator{KB: kb}
}

// Estimate returns travel minutes between two areas.
//
// Priority order: tuned pairwise entry (both directions tried), neighbor
// short estimate, cross-area default, unknown-area default. A preferred mode
// is honored when that mode is available; otherwise the recommended mode is
// the fastest one with ties broken walking < transit < driving < cycling.
func (t *TravelEstimator) Estimate(fromArea, toArea string, preferred domain.TransportMode) domain.TravelEstimate {
	est := t.lookup(fromArea, toArea)

	if preferred != "" && est.MinutesByMode(preferred) > 0 {
		est.RecommendedMode = preferred
		return est
	}
	est.RecommendedMode = est.RecommendMode()
	return est
}

func (t *TravelEstimator) lookup(fromArea, toArea string) domain.TravelEstimate {
	if knowledge.Normalize(fromArea) == knowledge.Normalize(toArea) && fromArea != "" {
		if _, known := t.KB.Area(fromArea); known {
			return domain.TravelEstimate{
				WalkingMinutes:  5,
				TransitMinutes:  5,
				DrivingMinutes:  5,
				RecommendedMode: domain.ModeWalking,
			}
		}
	}

	if e, ok := t.KB.TunedEstimate(fromArea, toArea); ok {
		return e
	}
	if e, ok := t.KB.TunedEstimate(toArea, fromArea); ok {
		return e
	}

	_, fromKnown := t.KB.Area(fromArea)
	_, toKnown := t.KB.Area(toArea)
	if !fromKnown || !toKnown {
		return unknownAreaEstimate
	}

	if t.KB.Neighbors(fromArea, toArea) {
		return neighborEstimate
	}

	return crossAreaEstimate
}

// Minutes is a convenience wrapper returning the recommended-mode minutes,
// matching the shape the itinerary invariant check expects.
func (t *TravelEstimator) Minutes(fromArea, toArea string) int {
	return t.Estimate(fromArea, toArea, "").RecommendedMinutes()
}
