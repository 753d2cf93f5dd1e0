package ports

import (
	"context"
	"time"
)

// A single forecast point. Condition is a normalized label ("clear",
// "cloudy", "rain", "storm", "snow").
type ForecastEntry struct {
	Timestamp time.Time
	TempC     float64
	Condition string
}

// Contract for the external weather forecast provider. Entries are ordered
// by timestamp.
type ForecastProvider interface {
	Forecast(ctx context.Context, lat, lng float64) ([]ForecastEntry, error)
}
