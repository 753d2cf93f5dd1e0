package services

import (
	"sort"
	"strings"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"
)

// Matches below this confidence are treated as misses; callers then fall
// back to the city's default area.
const minResolveConfidence = 0.5

// LocationResolver maps raw place mentions onto canonical areas.
//
// Resolution is a pure function of the knowledge snapshot: no network calls,
// no mutation. Matching order is exact name, alias/misspelling table,
// landmark table, then substring containment scored by length ratio.
type LocationResolver struct {
	KB   *knowledge.Base
	City domain.CityConfig
}

func NewLocationResolver(kb *knowledge.Base, city domain.CityConfig) *LocationResolver {
	return &LocationResolver{KB: kb, City: city}
}

type resolveCandidate struct {
	area       domain.Area
	confidence float64
}

// Resolve returns the canonical area for a raw mention, or ok=false when no
// candidate clears the confidence threshold.
func (r *LocationResolver) Resolve(rawMention string) (domain.Area, bool) {
	candidates := r.rankCandidates(rawMention)
	if len(candidates) == 0 || candidates[0].confidence < minResolveConfidence {
		return domain.Area{}, false
	}
	return candidates[0].area, true
}

// ResolveOrDefault falls back to the city's default area on a miss.
func (r *LocationResolver) ResolveOrDefault(rawMention string) domain.Area {
	if a, ok := r.Resolve(rawMention); ok {
		return a
	}
	if a, ok := r.KB.Area(r.City.DefaultArea); ok {
		return a
	}
	// A city without a usable default still needs coordinates for venue bias.
	return domain.Area{Name: r.City.DefaultArea, Coordinates: r.City.DefaultLocation}
}

// rankCandidates scores every plausible match, best first. Exact matches
// score 1.0, aliases 0.9, landmarks 0.85, substring containment by the
// ratio of the shorter string to the longer.
func (r *LocationResolver) rankCandidates(rawMention string) []resolveCandidate {
	mention := knowledge.Normalize(rawMention)
	if mention == "" {
		return nil
	}

	if a, ok := r.KB.Area(mention); ok {
		return []resolveCandidate{{area: a, confidence: 1.0}}
	}
	if a, ok := r.KB.ResolveAlias(mention); ok {
		return []resolveCandidate{{area: a, confidence: 0.9}}
	}
	if a, ok := r.KB.ResolveLandmark(mention); ok {
		return []resolveCandidate{{area: a, confidence: 0.85}}
	}

	var out []resolveCandidate
	for _, a := range r.KB.Areas() {
		name := knowledge.Normalize(a.Name)
		score := containmentScore(mention, name)
		if score > 0 {
			out = append(out, resolveCandidate{area: a, confidence: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].confidence > out[j].confidence
	})
	return out
}

// containmentScore scores substring containment in either direction.
// "mayfair area" contains "mayfair" -> 7/12; unrelated strings score 0.
func containmentScore(mention, name string) float64 {
	shorter, longer := mention, name
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) < 3 || !strings.Contains(longer, shorter) {
		return 0
	}
	return float64(len(shorter)) / float64(len(longer))
}
