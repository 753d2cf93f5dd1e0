package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"itinerary-planner-service/internal/adapters/llm"
	"itinerary-planner-service/internal/adapters/venues"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"

	"github.com/stretchr/testify/assert"
)

type noopRepo struct{}

func (noopRepo) SaveItinerary(ctx context.Context, it *domain.Itinerary) error { return nil }
func (noopRepo) ListItineraries(ctx context.Context, limit int) ([]*domain.Itinerary, error) {
	return nil, nil
}

type noopForecast struct{}

func (noopForecast) Forecast(ctx context.Context, lat, lng float64) ([]ports.ForecastEntry, error) {
	return nil, nil
}

func newTestRouter() http.Handler {
	city := domain.CityConfig{Slug: "testville", Timezone: "UTC", DefaultArea: "Old Town"}
	kb := knowledge.NewBase([]domain.Area{{Name: "Old Town"}}, nil, nil, nil)
	planner := services.NewPlanner(city, kb, llm.NewMockParser(), venues.NewMockVenueProvider(nil), noopForecast{})
	return NewRouter(planner, noopRepo{})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/areas", http.StatusOK},
		{http.MethodGet, "/itineraries", http.StatusOK},
		{http.MethodGet, "/plan", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterAssignsRequestID(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
