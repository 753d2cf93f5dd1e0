package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"

	"github.com/samber/lo"
)

// Preference words treated as a "quiet, not crowded" signal.
var quietSignals = []string{"quiet", "calm", "peaceful", "not crowded", "non-crowded", "uncrowded", "relaxed"}

// A scored candidate area. Reasons list each additive contribution so the
// ranking stays auditable.
type AreaScore struct {
	Area              domain.Area
	Score             int
	Reasons           []string
	CrowdLevel        int
	TravelTimeMinutes int
}

// AreaRanker scores areas against an activity and stated preferences.
//
// Scoring is additive, never multiplicative: +30 for a popular-for match,
// +20 per matched preference, a crowd adjustment when a quiet signal is
// present, and a proximity adjustment from transit minutes. Candidates with
// non-positive scores are excluded; ties preserve knowledge-base order.
type AreaRanker struct {
	KB        *knowledge.Base
	Estimator *TravelEstimator
}

func NewAreaRanker(kb *knowledge.Base, est *TravelEstimator) *AreaRanker {
	return &AreaRanker{KB: kb, Estimator: est}
}

// Rank scores all known areas for the activity, best first. currentArea
// biases scoring toward proximity; at picks the crowd-level bucket.
func (r *AreaRanker) Rank(activityType string, preferences []string, currentArea string, at time.Time) []AreaScore {
	activity := knowledge.Normalize(activityType)
	wantQuiet := hasQuietSignal(preferences)
	tod := domain.TimeOfDayFor(at)
	weekend := at.Weekday() == time.Saturday || at.Weekday() == time.Sunday

	var out []AreaScore
	for _, area := range r.KB.Areas() {
		s := AreaScore{Area: area}

		if activity != "" && tagsMatch(area.PopularFor, activity) {
			s.Score += 30
			s.Reasons = append(s.Reasons, fmt.Sprintf("popular for %s", activityType))
		}

		for _, pref := range preferences {
			p := knowledge.Normalize(pref)
			if p != "" && tagsMatch(area.Characteristics, p) {
				s.Score += 20
				s.Reasons = append(s.Reasons, fmt.Sprintf("matches preference %q", pref))
			}
		}

		s.CrowdLevel = area.CrowdLevels.At(tod, weekend)
		if wantQuiet {
			switch {
			case s.CrowdLevel > 0 && s.CrowdLevel <= 2:
				s.Score += 25
				s.Reasons = append(s.Reasons, "quiet at this time")
			case s.CrowdLevel >= 4:
				s.Score -= 20
				s.Reasons = append(s.Reasons, "busy at this time")
			}
		}

		if currentArea != "" {
			est := r.Estimator.Estimate(currentArea, area.Name, "")
			s.TravelTimeMinutes = est.TransitMinutes
			switch {
			case s.TravelTimeMinutes <= 10:
				s.Score += 20
				s.Reasons = append(s.Reasons, "very close by")
			case s.TravelTimeMinutes <= 20:
				s.Score += 10
				s.Reasons = append(s.Reasons, "close by")
			case s.TravelTimeMinutes > 40:
				s.Score -= 10
				s.Reasons = append(s.Reasons, "far away")
			}
		}

		if s.Score > 0 {
			out = append(out, s)
		}
	}

	// Stable sort keeps knowledge-base iteration order on equal scores.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func hasQuietSignal(preferences []string) bool {
	return lo.SomeBy(preferences, func(pref string) bool {
		p := knowledge.Normalize(pref)
		return lo.SomeBy(quietSignals, func(sig string) bool {
			return strings.Contains(p, sig)
		})
	})
}

// tagsMatch reports whether any tag substring-matches the needle in either
// direction ("coffee" matches tag "coffee shops" and vice versa).
func tagsMatch(tags []string, needle string) bool {
	return lo.SomeBy(tags, func(tag string) bool {
		t := knowledge.Normalize(tag)
		return t != "" && (strings.Contains(t, needle) || strings.Contains(needle, t))
	})
}
