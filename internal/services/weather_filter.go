package services

import (
	"strings"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
)

// Category keywords that classify a venue as outdoor.
var outdoorKeywords = []string{
	"park", "garden", "trail", "hike", "beach", "zoo", "market",
	"rooftop", "terrace", "outdoor", "viewpoint", "walk", "picnic",
}

// Forecast conditions that make an outdoor venue unsuitable.
var unsuitableConditions = map[string]struct{}{
	"rain":    {},
	"drizzle": {},
	"storm":   {},
	"snow":    {},
	"sleet":   {},
	"hail":    {},
}

// Temperatures outside this band count as extreme for outdoor activities.
const (
	minOutdoorTempC = 0.0
	maxOutdoorTempC = 35.0
)

// WeatherFilter classifies venues as outdoor/indoor and checks forecast
// conditions at the scheduled time. An unsuitable forecast demotes a
// candidate; it never hard-fails the entry.
type WeatherFilter struct{}

func NewWeatherFilter() *WeatherFilter { return &WeatherFilter{} }

// IsOutdoor reports whether the venue's category tags match the fixed
// outdoor keyword table.
func (f *WeatherFilter) IsOutdoor(v domain.Venue) bool {
	for _, cat := range v.Categories {
		c := strings.ToLower(cat)
		for _, kw := range outdoorKeywords {
			if strings.Contains(c, kw) {
				return true
			}
		}
	}
	return false
}

// Suitable checks the nearest forecast entry to the scheduled time.
// Indoor venues are always suitable; outdoor venues are unsuitable under
// precipitation or extreme temperatures. With no forecast data the venue
// passes (missing data must not veto placement).
func (f *WeatherFilter) Suitable(v domain.Venue, scheduledAt time.Time, forecast []ports.ForecastEntry) (bool, string) {
	if !f.IsOutdoor(v) {
		return true, ""
	}

	entry, ok := nearestForecast(scheduledAt, forecast)
	if !ok {
		return true, ""
	}

	cond := strings.ToLower(entry.Condition)
	if _, bad := unsuitableConditions[cond]; bad {
		return false, cond + " forecast at scheduled time"
	}
	if entry.TempC < minOutdoorTempC || entry.TempC > maxOutdoorTempC {
		return false, "extreme temperature at scheduled time"
	}
	return true, ""
}

func nearestForecast(at time.Time, entries []ports.ForecastEntry) (ports.ForecastEntry, bool) {
	if len(entries) == 0 {
		return ports.ForecastEntry{}, false
	}
	best := entries[0]
	bestDiff := absDuration(at.Sub(best.Timestamp))
	for _, e := range entries[1:] {
		if d := absDuration(at.Sub(e.Timestamp)); d < bestDiff {
			best = e
			bestDiff = d
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
