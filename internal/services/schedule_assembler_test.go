package services

import (
	"testing"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

func newTestAssembler() *ScheduleAssembler {
	kb := newTestKB()
	est := NewTravelEstimator(kb)
	return NewScheduleAssembler(est, NewAreaRanker(kb, est), NewWeatherFilter())
}

var testDate = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC) // a Monday

func dayAt(h, m int) time.Time {
	return time.Date(testDate.Year(), testDate.Month(), testDate.Day(), h, m, 0, 0, time.UTC)
}

func fixedEntry(activity, clock, area string, v domain.Venue) EntryCandidates {
	return EntryCandidates{
		Entry:      domain.ActivityEntry{Activity: activity, Time: clock, Kind: domain.KindFixed},
		Candidates: []PlacementCandidate{{AreaName: area, Venue: v}},
	}
}

func flexEntry(activity, area string, v domain.Venue) EntryCandidates {
	return EntryCandidates{
		Entry:      domain.ActivityEntry{Activity: activity, Kind: domain.KindFlexible},
		Candidates: []PlacementCandidate{{AreaName: area, Venue: v}},
	}
}

func baseRequest() AssembleRequest {
	return AssembleRequest{
		CitySlug:  "testville",
		Date:      testDate,
		DayStart:  dayAt(9, 0),
		DayEnd:    dayAt(22, 0),
		StartArea: "Old Town",
	}
}

func activities(it *domain.Itinerary) []string {
	out := make([]string, 0, len(it.Items))
	for _, item := range it.Items {
		out = append(out, item.Entry.Activity)
	}
	return out
}

func TestAssembleFixedAnchorsAndGapFill(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Fixed = []EntryCandidates{
		fixedEntry("lunch", "13:00", "Old Town", venue("Lunch Spot", "restaurant")),
		fixedEntry("dinner", "19:00", "Docklands", venue("Dock Grill", "restaurant")),
	}
	req.Flexible = []EntryCandidates{
		flexEntry("coffee", "Riverside", venue("Cafe Riva", "cafe")),
	}

	it := a.Assemble(req)

	if it.ID == "" {
		t.Fatal("assembled itinerary has no ID")
	}
	if len(it.Dropped) != 0 {
		t.Fatalf("unexpected drops: %+v", it.Dropped)
	}
	got := activities(it)
	want := []string{"coffee", "lunch", "dinner"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Coffee carries no anchor linkage, so it fills the earliest block:
	// 10 minutes walk from Old Town.
	coffee := it.Items[0]
	if !coffee.StartTime.Equal(dayAt(9, 10)) {
		t.Fatalf("coffee start = %s, want 09:10", coffee.StartTime.Format("15:04"))
	}
	if coffee.AreaName != "Riverside" {
		t.Fatalf("coffee area = %q, want Riverside", coffee.AreaName)
	}

	if err := it.Validate(a.Estimator.Minutes); err != nil {
		t.Fatalf("assembled itinerary violates its own invariant: %v", err)
	}
}

func TestAssembleFlexibleStaysAfterItsAnchor(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Fixed = []EntryCandidates{
		fixedEntry("lunch", "12:00", "Old Town", venue("Lunch Spot", "restaurant")),
		fixedEntry("drinks", "19:00", "Docklands", venue("Dock Bar", "bar")),
	}
	req.Fixed[0].Entry.DurationMinutes = 60
	coffee := flexEntry("coffee", "Riverside", venue("Cafe Riva", "cafe"))
	coffee.Entry.AfterFixed = 1 // mentioned between lunch and drinks
	req.Flexible = []EntryCandidates{coffee}

	it := a.Assemble(req)

	if len(it.Dropped) != 0 {
		t.Fatalf("unexpected drops: %+v", it.Dropped)
	}
	got := activities(it)
	want := []string{"lunch", "coffee", "drinks"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	c := it.Items[1]
	if c.StartTime.Before(dayAt(13, 0)) {
		t.Fatalf("coffee starts %s, must not start before lunch ends at 13:00", c.StartTime.Format("15:04"))
	}
	out := a.Estimator.Minutes(c.AreaName, "Docklands")
	if limit := dayAt(19, 0).Add(-time.Duration(out) * time.Minute); c.EndTime.After(limit) {
		t.Fatalf("coffee ends %s, leaves no travel margin before drinks at 19:00", c.EndTime.Format("15:04"))
	}
	if err := it.Validate(a.Estimator.Minutes); err != nil {
		t.Fatalf("assembled itinerary violates its own invariant: %v", err)
	}
}

func TestAssembleAnchorFloorSurvivesDroppedAnchor(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Fixed = []EntryCandidates{
		fixedEntry("meeting", "12:00", "Old Town", venue("Office", "office")),
		fixedEntry("viewing", "12:30", "Riverside", venue("Showroom", "store")),
	}
	walk := flexEntry("walk", "Riverside", venue("River Park", "park"))
	walk.Entry.AfterFixed = 2 // mentioned after the viewing, which gets dropped
	req.Flexible = []EntryCandidates{walk}

	it := a.Assemble(req)

	var placed *domain.ResolvedActivity
	for i := range it.Items {
		if it.Items[i].Entry.Activity == "walk" {
			placed = &it.Items[i]
		}
	}
	if placed == nil {
		t.Fatalf("walk not placed, dropped: %+v", it.Dropped)
	}
	// The viewing overlapped and was dropped, so the floor falls back to
	// the meeting's end.
	if placed.StartTime.Before(dayAt(13, 0)) {
		t.Fatalf("walk starts %s, must not start before the meeting ends at 13:00", placed.StartTime.Format("15:04"))
	}
}

func TestAssembleNearestNeighborOrdering(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.DayStart = dayAt(10, 0)
	req.Flexible = []EntryCandidates{
		flexEntry("drinks", "Docklands", venue("Dock Bar", "bar")),
		flexEntry("museum", "Old Town", venue("City Museum", "museum")),
		flexEntry("coffee", "Riverside", venue("Cafe Riva", "cafe")),
	}

	it := a.Assemble(req)

	// Greedy nearest-neighbor from Old Town: museum (same area), then
	// coffee (10 minute walk), then drinks (cross-town transit).
	got := activities(it)
	want := []string{"museum", "coffee", "drinks"}
	if len(got) != len(want) {
		t.Fatalf("placed %v, want %v (dropped: %+v)", got, want, it.Dropped)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAssembleEqualTravelKeepsInputOrder(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Flexible = []EntryCandidates{
		flexEntry("first coffee", "Riverside", venue("Cafe One", "cafe")),
		flexEntry("second coffee", "Riverside", venue("Cafe Two", "cafe")),
	}

	it := a.Assemble(req)

	got := activities(it)
	if len(got) != 2 || got[0] != "first coffee" || got[1] != "second coffee" {
		t.Fatalf("order = %v, want input order on equal travel times", got)
	}
}

func TestAssembleOverlappingFixedDropped(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Fixed = []EntryCandidates{
		fixedEntry("meeting", "12:00", "Old Town", venue("Office", "office")),
		fixedEntry("viewing", "12:30", "Riverside", venue("Showroom", "store")),
	}

	it := a.Assemble(req)

	if len(it.Items) != 1 || it.Items[0].Entry.Activity != "meeting" {
		t.Fatalf("placed = %v, want only the earlier anchor", activities(it))
	}
	if len(it.Dropped) != 1 {
		t.Fatalf("dropped = %+v, want one entry", it.Dropped)
	}
	if it.Dropped[0].Reason != "overlaps an earlier fixed commitment" {
		t.Fatalf("drop reason = %q", it.Dropped[0].Reason)
	}
}

func TestAssembleDropReasons(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Fixed = []EntryCandidates{
		{
			Entry:      domain.ActivityEntry{Activity: "brunch", Time: "sometime", Kind: domain.KindFixed},
			Candidates: []PlacementCandidate{{AreaName: "Riverside", Venue: venue("Brunch Bar", "cafe")}},
		},
	}
	req.Flexible = []EntryCandidates{
		{
			Entry:      domain.ActivityEntry{Activity: "shopping", Kind: domain.KindFlexible},
			FailReason: "venue search timed out",
		},
		{
			Entry: domain.ActivityEntry{Activity: "spa", Kind: domain.KindFlexible},
		},
	}

	it := a.Assemble(req)

	if len(it.Items) != 0 {
		t.Fatalf("nothing should be placed, got %v", activities(it))
	}
	reasons := map[string]string{}
	for _, d := range it.Dropped {
		reasons[d.Entry.Activity] = d.Reason
	}
	if reasons["brunch"] != `unusable time "sometime"` {
		t.Fatalf("brunch reason = %q", reasons["brunch"])
	}
	if reasons["shopping"] != "venue search timed out" {
		t.Fatalf("shopping reason = %q", reasons["shopping"])
	}
	if reasons["spa"] != "no venue found" {
		t.Fatalf("spa reason = %q", reasons["spa"])
	}
}

func TestAssembleWeatherDemotion(t *testing.T) {
	a := newTestAssembler()

	rainAllDay := make([]ports.ForecastEntry, 0, 14)
	for h := 8; h < 22; h++ {
		rainAllDay = append(rainAllDay, ports.ForecastEntry{
			Timestamp: dayAt(h, 0),
			TempC:     12,
			Condition: "rain",
		})
	}

	walk := EntryCandidates{
		Entry: domain.ActivityEntry{Activity: "walk", Kind: domain.KindFlexible},
		Candidates: []PlacementCandidate{
			{AreaName: "Riverside", Venue: venue("River Park", "park")},
			{AreaName: "Riverside", Venue: venue("Glass House", "museum")},
		},
	}

	req := baseRequest()
	req.Flexible = []EntryCandidates{walk}
	req.Forecast = rainAllDay

	it := a.Assemble(req)
	if len(it.Items) != 1 {
		t.Fatalf("expected one placement, got %v (dropped %+v)", activities(it), it.Dropped)
	}
	if got := it.Items[0].Venue.Name; got != "Glass House" {
		t.Fatalf("rain should demote the outdoor venue, placed %q", got)
	}

	// Under a clear sky the outdoor primary wins again.
	req.Forecast = []ports.ForecastEntry{{Timestamp: dayAt(12, 0), TempC: 20, Condition: "clear"}}
	it = a.Assemble(req)
	if got := it.Items[0].Venue.Name; got != "River Park" {
		t.Fatalf("clear forecast should keep the primary, placed %q", got)
	}
}

func TestAssembleDropsWhatCannotFit(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.DayEnd = dayAt(9, 30)
	req.Flexible = []EntryCandidates{
		flexEntry("coffee", "Riverside", venue("Cafe Riva", "cafe")),
	}

	it := a.Assemble(req)

	if len(it.Items) != 0 {
		t.Fatalf("nothing fits a 30 minute day, got %v", activities(it))
	}
	if len(it.Dropped) != 1 || it.Dropped[0].Reason != "no gap fits without overlapping a fixed commitment" {
		t.Fatalf("dropped = %+v", it.Dropped)
	}
}

func TestAssembleRespectsEntryDuration(t *testing.T) {
	a := newTestAssembler()

	req := baseRequest()
	req.Flexible = []EntryCandidates{
		{
			Entry:      domain.ActivityEntry{Activity: "museum", DurationMinutes: 120, Kind: domain.KindFlexible},
			Candidates: []PlacementCandidate{{AreaName: "Old Town", Venue: venue("City Museum", "museum")}},
		},
	}

	it := a.Assemble(req)
	if len(it.Items) != 1 {
		t.Fatalf("expected one placement, dropped %+v", it.Dropped)
	}
	got := it.Items[0].EndTime.Sub(it.Items[0].StartTime)
	if got != 2*time.Hour {
		t.Fatalf("duration = %s, want 2h", got)
	}
}
