package domain

import (
	"strings"
	"testing"
	"time"
)

func TestItineraryValidate(t *testing.T) {
	day := time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC)
	}

	// fixed 15-minute buffer between any two areas
	travel := func(from, to string) int { return 15 }

	it := &Itinerary{
		Items: []ResolvedActivity{
			{Entry: ActivityEntry{Activity: "coffee"}, AreaName: "A", StartTime: at(9, 0), EndTime: at(10, 0)},
			{Entry: ActivityEntry{Activity: "museum"}, AreaName: "B", StartTime: at(10, 15), EndTime: at(11, 15)},
		},
	}
	if err := it.Validate(travel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// second item starts inside the travel buffer
	it.Items[1].StartTime = at(10, 10)
	err := it.Validate(travel)
	if err == nil {
		t.Fatal("expected travel buffer violation")
	}
	if !strings.Contains(err.Error(), "travel") {
		t.Fatalf("error should mention travel, got: %v", err)
	}

	// items out of start-time order
	it.Items[1].StartTime = at(8, 0)
	if err := it.Validate(travel); err == nil {
		t.Fatal("expected ordering violation")
	}
}

func TestItineraryValidateEmpty(t *testing.T) {
	it := &Itinerary{}
	if err := it.Validate(func(string, string) int { return 99 }); err != nil {
		t.Fatalf("empty itinerary should validate, got: %v", err)
	}
}
