package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"itinerary-planner-service/internal/ports"

	gocache "github.com/patrickmn/go-cache"
)

// OpenMeteoProvider implements ForecastProvider on the Open-Meteo hourly
// forecast API. Results are memoized in-process for 30 minutes per rounded
// coordinate; a stale forecast is better than a failed plan.
type OpenMeteoProvider struct {
	session *http.Client
	baseURL string
	memo    *gocache.Cache
}

func NewOpenMeteoProvider() *OpenMeteoProvider {
	return &OpenMeteoProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.open-meteo.com/v1/forecast",
		memo:    gocache.New(30*time.Minute, 10*time.Minute),
	}
}

type openMeteoResponse struct {
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2M []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"hourly"`
}

// Forecast returns the next 24 hourly forecast points for the location.
func (o *OpenMeteoProvider) Forecast(ctx context.Context, lat, lng float64) ([]ports.ForecastEntry, error) {
	key := fmt.Sprintf("%.2f,%.2f", lat, lng)
	if cached, ok := o.memo.Get(key); ok {
		return cached.([]ports.ForecastEntry), nil
	}

	vals := url.Values{}
	vals.Set("latitude", fmt.Sprintf("%.4f", lat))
	vals.Set("longitude", fmt.Sprintf("%.4f", lng))
	vals.Set("hourly", "temperature_2m,weather_code")
	vals.Set("forecast_days", "2")
	vals.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+vals.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("get forecast: create request: %w", err)
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get forecast: unexpected status %d", resp.StatusCode)
	}

	var decoded openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("get forecast: decode response: %w", err)
	}

	n := len(decoded.Hourly.Time)
	if len(decoded.Hourly.Temperature2M) != n || len(decoded.Hourly.WeatherCode) != n {
		return nil, fmt.Errorf("get forecast: ragged hourly arrays")
	}

	out := make([]ports.ForecastEntry, 0, n)
	for i := 0; i < n; i++ {
		ts, err := time.Parse("2006-01-02T15:04", decoded.Hourly.Time[i])
		if err != nil {
			return nil, fmt.Errorf("get forecast: parse timestamp %q: %w", decoded.Hourly.Time[i], err)
		}
		out = append(out, ports.ForecastEntry{
			Timestamp: ts.UTC(),
			TempC:     decoded.Hourly.Temperature2M[i],
			Condition: conditionForCode(decoded.Hourly.WeatherCode[i]),
		})
	}

	o.memo.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

// conditionForCode maps WMO weather codes onto the planner's normalized
// condition labels.
func conditionForCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain"
	case code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "storm"
	default:
		return "unknown"
	}
}
