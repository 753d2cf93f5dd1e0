package knowledge

import (
	"log"
	"strings"

	"itinerary-planner-service/internal/domain"
)

// A tuned pairwise travel estimate between two named areas.
type TunedEstimate struct {
	From     string                `json:"from"`
	To       string                `json:"to"`
	Estimate domain.TravelEstimate `json:"estimate"`
}

// Base is the immutable area knowledge snapshot for one city.
//
// It is loaded once at startup and never mutated afterwards; any update
// requires a full reload. Area names are unique under lowercase
// normalization, and iteration order is the seed order so that ranking
// tie-breaks stay stable across calls.
type Base struct {
	areas     map[string]domain.Area
	order     []string
	aliases   map[string]string
	landmarks map[string]string
	travel    map[string]domain.TravelEstimate
}

// Normalize lowercases and collapses whitespace, producing the canonical
// lookup key for area names.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func travelKey(from, to string) string {
	return Normalize(from) + "|" + Normalize(to)
}

// NewBase builds a snapshot from areas, alias/landmark tables, and the tuned
// travel table. Later duplicates under lowercase normalization are dropped
// with a log line; neighbor references to unknown areas are kept as-is and
// degrade to the default-estimate path at query time.
func NewBase(
	areas []domain.Area,
	aliases map[string]string,
	landmarks map[string]string,
	tuned []TunedEstimate,
) *Base {
	b := &Base{
		areas:     make(map[string]domain.Area, len(areas)),
		order:     make([]string, 0, len(areas)),
		aliases:   make(map[string]string, len(aliases)),
		landmarks: make(map[string]string, len(landmarks)),
		travel:    make(map[string]domain.TravelEstimate, len(tuned)),
	}

	for _, a := range areas {
		key := Normalize(a.Name)
		if key == "" {
			continue
		}
		if _, exists := b.areas[key]; exists {
			log.Printf("knowledge: duplicate area name %q dropped", a.Name)
			continue
		}
		b.areas[key] = a
		b.order = append(b.order, key)
	}

	for alias, target := range aliases {
		b.aliases[Normalize(alias)] = Normalize(target)
	}
	for landmark, target := range landmarks {
		b.landmarks[Normalize(landmark)] = Normalize(target)
	}

	for _, t := range tuned {
		e := t.Estimate
		if e.RecommendedMode == "" {
			e.RecommendedMode = e.RecommendMode()
		}
		b.travel[travelKey(t.From, t.To)] = e
	}

	return b
}

// Area looks up an area by name under lowercase normalization.
func (b *Base) Area(name string) (domain.Area, bool) {
	a, ok := b.areas[Normalize(name)]
	return a, ok
}

// Areas returns all areas in stable seed order.
func (b *Base) Areas() []domain.Area {
	out := make([]domain.Area, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.areas[key])
	}
	return out
}

// ResolveAlias maps a known alternative spelling onto its canonical area.
func (b *Base) ResolveAlias(name string) (domain.Area, bool) {
	target, ok := b.aliases[Normalize(name)]
	if !ok {
		return domain.Area{}, false
	}
	a, ok := b.areas[target]
	return a, ok
}

// ResolveLandmark maps a known landmark name onto its containing area.
func (b *Base) ResolveLandmark(name string) (domain.Area, bool) {
	target, ok := b.landmarks[Normalize(name)]
	if !ok {
		return domain.Area{}, false
	}
	a, ok := b.areas[target]
	return a, ok
}

// TunedEstimate returns the tuned estimate for from->to, if present.
// Callers decide whether to try the reverse direction.
func (b *Base) TunedEstimate(from, to string) (domain.TravelEstimate, bool) {
	e, ok := b.travel[travelKey(from, to)]
	return e, ok
}

// Neighbors reports whether the two areas list each other as adjacent in
// either direction. Unknown areas are never neighbors.
func (b *Base) Neighbors(from, to string) bool {
	return b.listsNeighbor(from, to) || b.listsNeighbor(to, from)
}

func (b *Base) listsNeighbor(from, to string) bool {
	a, ok := b.areas[Normalize(from)]
	if !ok {
		return false
	}
	want := Normalize(to)
	for _, n := range a.Neighbors {
		if Normalize(n) == want {
			return true
		}
	}
	return false
}
