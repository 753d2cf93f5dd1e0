package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
)

// How many areas to search for a flexible entry with no usable location
// mention, and how many venues to keep per searched area.
const (
	maxSearchAreas    = 3
	venuesPerArea     = 2
	searchConcurrency = 5
)

// ErrNothingPlanned reports that no entry could be extracted or placed.
var ErrNothingPlanned = errors.New("no activities could be planned")

type PlanDayRequest struct {
	Query     string
	Date      time.Time // midnight in the city's timezone
	StartTime string    // optional 24h clock, default 09:00
	EndTime   string    // optional 24h clock, default 23:00
}

// Planner orchestrates one itinerary request: parse, resolve each entry
// against the knowledge base and the venue provider, fetch the forecast,
// then assemble.
//
// External calls are the only suspension points. Venue searches for distinct
// entries run concurrently but are joined before assembly begins, since
// placement order depends on every entry's resolved data. The knowledge
// snapshot is never mutated.
type Planner struct {
	City      domain.CityConfig
	KB        *knowledge.Base
	Parser    ports.RequestParser
	Venues    ports.VenueSearcher
	Forecasts ports.ForecastProvider

	Resolver  *LocationResolver
	Estimator *TravelEstimator
	Ranker    *AreaRanker
	Assembler *ScheduleAssembler
}

func NewPlanner(
	city domain.CityConfig,
	kb *knowledge.Base,
	parser ports.RequestParser,
	venues ports.VenueSearcher,
	forecasts ports.ForecastProvider,
) *Planner {
	est := NewTravelEstimator(kb)
	ranker := NewAreaRanker(kb, est)
	return &Planner{
		City:      city,
		KB:        kb,
		Parser:    parser,
		Venues:    venues,
		Forecasts: forecasts,
		Resolver:  NewLocationResolver(kb, city),
		Estimator: est,
		Ranker:    ranker,
		Assembler: NewScheduleAssembler(est, ranker, NewWeatherFilter()),
	}
}

// PlanDay plans a single-day itinerary from a free-text request.
//
// A ParseError propagates so the caller can surface a "couldn't understand
// request" outcome. Per-entry resolution failures are contained as dropped
// entries; ErrNothingPlanned is returned only when nothing was placeable.
func (p *Planner) PlanDay(ctx context.Context, req PlanDayRequest) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "planner.PlanDay")(&err)

	parsed, err := p.Parser.Parse(ctx, req.Query, p.City)
	if err != nil {
		if ports.IsParseError(err) {
			return nil, err
		}
		return nil, &ports.ParseError{Err: err}
	}

	if len(parsed.FixedTimeEntries)+len(parsed.FlexibleTimeEntries) == 0 {
		return nil, ErrNothingPlanned
	}

	dayStart, err := clockOn(req.Date, orDefault(req.StartTime, "09:00"))
	if err != nil {
		dayStart, _ = clockOn(req.Date, "09:00")
	}
	dayEnd, err := clockOn(req.Date, orDefault(req.EndTime, "23:00"))
	if err != nil {
		dayEnd, _ = clockOn(req.Date, "23:00")
	}

	fixed := p.resolveEntries(ctx, parsed.FixedTimeEntries, false, dayStart)
	flexible := p.resolveEntries(ctx, parsed.FlexibleTimeEntries, true, dayStart)

	forecast := p.fetchForecast(ctx)

	it := p.Assembler.Assemble(AssembleRequest{
		CitySlug:  p.City.Slug,
		Date:      req.Date,
		DayStart:  dayStart,
		DayEnd:    dayEnd,
		StartArea: p.City.DefaultArea,
		Fixed:     fixed,
		Flexible:  flexible,
		Forecast:  forecast,
	})

	if len(it.Items) == 0 && len(it.Dropped) == 0 {
		return nil, ErrNothingPlanned
	}
	return it, nil
}

type entryResolution struct {
	index  int
	result EntryCandidates
}

// resolveEntries resolves locations and searches venues for a batch of
// entries. Searches fan out across a bounded worker pool and are joined
// before returning; a failed or timed-out search marks only its own entry.
func (p *Planner) resolveEntries(ctx context.Context, entries []domain.ActivityEntry, flexible bool, at time.Time) []EntryCandidates {
	if len(entries) == 0 {
		return nil
	}

	sem := make(chan struct{}, searchConcurrency)
	resultsCh := make(chan entryResolution, len(entries))
	var wg sync.WaitGroup

	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, e domain.ActivityEntry) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			resultsCh <- entryResolution{index: idx, result: p.resolveEntry(ctx, e, flexible, at)}
		}(i, entry)
	}

	wg.Wait()
	close(resultsCh)

	out := make([]EntryCandidates, len(entries))
	for res := range resultsCh {
		out[res.index] = res.result
	}
	return out
}

// resolveEntry picks target areas for one entry and queries the venue
// provider in each. Failures degrade to a FailReason, never an error.
func (p *Planner) resolveEntry(ctx context.Context, entry domain.ActivityEntry, flexible bool, at time.Time) EntryCandidates {
	out := EntryCandidates{Entry: entry}

	areas := p.targetAreas(entry, flexible, at)
	if len(areas) == 0 {
		out.FailReason = "no matching area in this city"
		return out
	}

	var lastErr error
	for _, area := range areas {
		results, err := p.Venues.Search(ctx, p.venueQuery(entry, area))
		if err != nil {
			if ctx.Err() != nil {
				out.FailReason = "venue search timed out"
				return out
			}
			lastErr = err
			continue
		}

		for _, v := range results.All()[:min(venuesPerArea, len(results.All()))] {
			out.Candidates = append(out.Candidates, PlacementCandidate{AreaName: area.Name, Venue: v})
		}
	}

	if len(out.Candidates) == 0 {
		if lastErr != nil && !ports.IsNoResults(lastErr) {
			log.Printf("planner: venue search for %q failed: %v", entry.Activity, lastErr)
		}
		out.FailReason = "no venue found"
	}
	return out
}

// targetAreas decides where to look for an entry's venue: the resolved
// mention when there is one, otherwise the top-ranked areas for the
// activity. Unresolvable mentions on fixed entries fall back to the city
// default rather than failing.
func (p *Planner) targetAreas(entry domain.ActivityEntry, flexible bool, at time.Time) []domain.Area {
	if entry.Location != "" {
		if a, ok := p.Resolver.Resolve(entry.Location); ok {
			return []domain.Area{a}
		}
		if !flexible {
			return []domain.Area{p.Resolver.ResolveOrDefault(entry.Location)}
		}
	}

	var prefs []string
	if entry.VenuePreference != "" {
		prefs = append(prefs, entry.VenuePreference)
	}
	ranked := p.Ranker.Rank(entry.Activity, prefs, p.City.DefaultArea, at)
	areas := make([]domain.Area, 0, maxSearchAreas)
	for _, s := range ranked {
		areas = append(areas, s.Area)
		if len(areas) == maxSearchAreas {
			break
		}
	}
	if len(areas) == 0 {
		areas = append(areas, p.Resolver.ResolveOrDefault(""))
	}
	return areas
}

// venueQuery maps an entry onto the provider's query shape using the city's
// category vocabulary.
func (p *Planner) venueQuery(entry domain.ActivityEntry, area domain.Area) ports.VenueQuery {
	q := ports.VenueQuery{
		Keywords:       strings.Fields(entry.Activity),
		LocationBias:   area.Coordinates,
		PreferenceText: entry.VenuePreference,
	}

	// Sorted iteration keeps the chosen type deterministic when several
	// vocabulary words match.
	activity := knowledge.Normalize(entry.Activity)
	words := make([]string, 0, len(p.City.CategoryVocabulary))
	for word := range p.City.CategoryVocabulary {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		types := p.City.CategoryVocabulary[word]
		if strings.Contains(activity, knowledge.Normalize(word)) && len(types) > 0 {
			q.Type = types[0]
			break
		}
	}
	return q
}

// fetchForecast retrieves the day's forecast for the city center. Forecast
// failures must not block planning; they only disable weather demotion.
func (p *Planner) fetchForecast(ctx context.Context) []ports.ForecastEntry {
	loc := p.City.DefaultLocation
	entries, err := p.Forecasts.Forecast(ctx, loc.Lat, loc.Lng)
	if err != nil {
		log.Printf("planner: forecast unavailable: %v", err)
		return nil
	}
	return entries
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
