package venues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
)

// GooglePlacesProvider implements VenueSearcher using the Places text
// search API.
//
// It coordinates:
//   - Query normalization into stable cache keys
//   - A pluggable persistent cache (SQLite, Postgres, or Redis)
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GooglePlacesProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	radiusM int
	cache   ports.VenueCache
}

func NewGooglePlacesProvider(apiKey string, cache ports.VenueCache) (*GooglePlacesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("places api key is empty")
	}

	return &GooglePlacesProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/place",
		radiusM: 1500,
		cache:   cache,
	}, nil
}

// Wire shape of a Places text search response.
type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types  []string `json:"types"`
		Rating float64  `json:"rating"`
	} `json:"results"`
}

// Search issues a text search biased to the query's location.
// Cached results are served without an external call; a ZERO_RESULTS reply
// maps to *ports.NoResultsError.
func (g *GooglePlacesProvider) Search(ctx context.Context, q ports.VenueQuery) (_ ports.VenueResults, err error) {
	defer obs.Time(ctx, "places.Search")(&err)

	text := g.queryText(q)
	if text == "" {
		return ports.VenueResults{}, errors.New("search venues: empty query")
	}

	key := cacheKey(text, q.LocationBias)
	if g.cache != nil {
		cached, hit, err := g.cache.Get(ctx, key)
		if err != nil {
			return ports.VenueResults{}, fmt.Errorf("venue cache get: %w", err)
		}
		if hit {
			return cached, nil
		}
	}

	endpoint := g.baseURL + "/textsearch/json"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		vals := url.Values{}
		vals.Set("query", text)
		vals.Set("key", g.apiKey)
		if !q.LocationBias.IsZero() {
			vals.Set("location", q.LocationBias.LatLngString())
			vals.Set("radius", fmt.Sprintf("%d", g.radiusM))
		}
		if q.Type != "" {
			vals.Set("type", q.Type)
		}
		req.URL.RawQuery = vals.Encode()
		return req, nil
	})
	if err != nil {
		return ports.VenueResults{}, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.VenueResults{}, fmt.Errorf("decode places response: %w", err)
	}

	if decoded.Status == "ZERO_RESULTS" || len(decoded.Results) == 0 {
		return ports.VenueResults{}, &ports.NoResultsError{Query: text}
	}
	if decoded.Status != "OK" {
		return ports.VenueResults{}, fmt.Errorf("places status %q", decoded.Status)
	}

	out := ports.VenueResults{}
	for i, r := range decoded.Results {
		v := domain.Venue{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Coordinates: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Categories: r.Types,
			Rating:     r.Rating,
		}
		if i == 0 {
			out.Primary = v
			continue
		}
		out.Alternatives = append(out.Alternatives, v)
		if len(out.Alternatives) == 4 {
			break
		}
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, key, out); err != nil {
			log.Printf("venue cache write failed: %v", err)
		}
	}

	return out, nil
}

// queryText combines preference, keywords, and type into one search string.
func (g *GooglePlacesProvider) queryText(q ports.VenueQuery) string {
	parts := make([]string, 0, 2+len(q.Keywords))
	if q.PreferenceText != "" {
		parts = append(parts, q.PreferenceText)
	}
	parts = append(parts, q.Keywords...)
	if len(parts) == 0 && q.Type != "" {
		parts = append(parts, strings.ReplaceAll(q.Type, "_", " "))
	}
	return normalize(strings.Join(parts, " "))
}

// normalize collapses whitespace and lowercases for consistent cache keys.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func cacheKey(text string, bias domain.Coordinates) string {
	if bias.IsZero() {
		return text
	}
	// Bias rounded to ~100m so nearby searches share a cache row.
	return fmt.Sprintf("%s|%.3f,%.3f", text, bias.Lat, bias.Lng)
}
