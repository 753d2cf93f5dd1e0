package knowledge

import (
	"testing"

	"itinerary-planner-service/internal/domain"
)

func testAreas() []domain.Area {
	return []domain.Area{
		{Name: "Riverside", Neighbors: []string{"Old Town"}},
		{Name: "Old Town"},
		{Name: "Docklands"},
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Old   Town ": "old town",
		"RIVERSIDE":     "riverside",
		"":              "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewBaseDropsDuplicates(t *testing.T) {
	areas := append(testAreas(), domain.Area{Name: "riverside", Characteristics: []string{"impostor"}})
	b := NewBase(areas, nil, nil, nil)

	if got := len(b.Areas()); got != 3 {
		t.Fatalf("expected 3 areas, got %d", got)
	}
	a, ok := b.Area("Riverside")
	if !ok {
		t.Fatal("Riverside not found")
	}
	if len(a.Characteristics) != 0 {
		t.Fatal("duplicate should not replace the first area")
	}
}

func TestAreasKeepSeedOrder(t *testing.T) {
	b := NewBase(testAreas(), nil, nil, nil)
	got := b.Areas()
	want := []string{"Riverside", "Old Town", "Docklands"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("areas[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestResolveAliasAndLandmark(t *testing.T) {
	b := NewBase(
		testAreas(),
		map[string]string{"The Docks": "Docklands"},
		map[string]string{"Old Bridge": "Riverside"},
		nil,
	)

	if a, ok := b.ResolveAlias("the docks"); !ok || a.Name != "Docklands" {
		t.Fatalf("alias lookup = (%q, %v), want Docklands", a.Name, ok)
	}
	if a, ok := b.ResolveLandmark("OLD BRIDGE"); !ok || a.Name != "Riverside" {
		t.Fatalf("landmark lookup = (%q, %v), want Riverside", a.Name, ok)
	}
	if _, ok := b.ResolveAlias("nowhere"); ok {
		t.Fatal("unknown alias should miss")
	}
}

func TestNeighborsEitherDirection(t *testing.T) {
	b := NewBase(testAreas(), nil, nil, nil)

	// Riverside lists Old Town; the reverse direction is not populated.
	if !b.Neighbors("Riverside", "Old Town") {
		t.Fatal("Riverside and Old Town should be neighbors")
	}
	if !b.Neighbors("Old Town", "Riverside") {
		t.Fatal("neighbor relation should hold in either direction")
	}
	if b.Neighbors("Riverside", "Docklands") {
		t.Fatal("Riverside and Docklands are not neighbors")
	}
	if b.Neighbors("Riverside", "Atlantis") {
		t.Fatal("unknown areas are never neighbors")
	}
}

func TestTunedEstimateFillsRecommendedMode(t *testing.T) {
	tuned := []TunedEstimate{
		{
			From:     "Riverside",
			To:       "Docklands",
			Estimate: domain.TravelEstimate{WalkingMinutes: 40, TransitMinutes: 15},
		},
	}
	b := NewBase(testAreas(), nil, nil, tuned)

	e, ok := b.TunedEstimate("riverside", "DOCKLANDS")
	if !ok {
		t.Fatal("tuned estimate not found under normalization")
	}
	if e.RecommendedMode != domain.ModeTransit {
		t.Fatalf("RecommendedMode = %s, want transit", e.RecommendedMode)
	}

	if _, ok := b.TunedEstimate("Docklands", "Riverside"); ok {
		t.Fatal("tuned estimates are directional; reverse lookup is the caller's choice")
	}
}
