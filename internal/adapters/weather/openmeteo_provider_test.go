package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hourlyBody = `{
	"hourly": {
		"time": ["2026-06-08T09:00", "2026-06-08T10:00", "2026-06-08T11:00"],
		"temperature_2m": [14.5, 16.0, 17.2],
		"weather_code": [0, 61, 95]
	}
}`

func newTestWeather(t *testing.T, handler http.HandlerFunc) *OpenMeteoProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewOpenMeteoProvider()
	p.baseURL = srv.URL
	return p
}

func TestForecast(t *testing.T) {
	p := newTestWeather(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "temperature_2m,weather_code", r.URL.Query().Get("hourly"))
		assert.Equal(t, "UTC", r.URL.Query().Get("timezone"))
		fmt.Fprint(w, hourlyBody)
	})

	entries, err := p.Forecast(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC), entries[0].Timestamp)
	assert.Equal(t, 14.5, entries[0].TempC)
	assert.Equal(t, "clear", entries[0].Condition)
	assert.Equal(t, "rain", entries[1].Condition)
	assert.Equal(t, "storm", entries[2].Condition)
}

func TestForecastMemoizes(t *testing.T) {
	calls := 0
	p := newTestWeather(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, hourlyBody)
	})

	ctx := context.Background()
	_, err := p.Forecast(ctx, 51.5074, -0.1278)
	require.NoError(t, err)
	_, err = p.Forecast(ctx, 51.5081, -0.1279) // same rounded key
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestForecastRaggedArrays(t *testing.T) {
	p := newTestWeather(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hourly": {"time": ["2026-06-08T09:00"], "temperature_2m": [], "weather_code": [0]}}`)
	})

	_, err := p.Forecast(context.Background(), 51.5, -0.1)
	require.Error(t, err)
}

func TestForecastServerError(t *testing.T) {
	p := newTestWeather(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := p.Forecast(context.Background(), 51.5, -0.1)
	require.Error(t, err)
}

func TestConditionForCode(t *testing.T) {
	cases := map[int]string{
		0:  "clear",
		2:  "cloudy",
		45: "fog",
		53: "drizzle",
		63: "rain",
		73: "snow",
		81: "rain",
		86: "snow",
		96: "storm",
		40: "unknown",
	}

	for code, want := range cases {
		assert.Equal(t, want, conditionForCode(code), "code %d", code)
	}
}
