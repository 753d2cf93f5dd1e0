package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"

	"github.com/google/uuid"
)

// A single placement option for an entry: a venue in its resolved area.
type PlacementCandidate struct {
	AreaName string
	Venue    domain.Venue
}

// EntryCandidates couples a parsed entry with its ranked placement options.
// FailReason carries an upstream resolution failure (venue search miss or
// provider timeout); such entries are reported as dropped, never fatal.
type EntryCandidates struct {
	Entry      domain.ActivityEntry
	Candidates []PlacementCandidate
	FailReason string
}

// AssembleRequest is the joined input for one itinerary: all entries must be
// resolved before assembly starts, since placement order depends on every
// entry's data.
type AssembleRequest struct {
	CitySlug  string
	Date      time.Time // midnight in the city's timezone
	DayStart  time.Time
	DayEnd    time.Time // zero means the evening is unbounded
	StartArea string
	Fixed     []EntryCandidates
	Flexible  []EntryCandidates
	Forecast  []ports.ForecastEntry
}

// ScheduleAssembler merges fixed and flexible entries into one ordered,
// travel-time-aware timeline.
//
// Entries move through Unresolved -> LocationResolved -> VenueSelected ->
// WeatherChecked -> Placed, with Dropped as the terminal failure state.
// Fixed entries are immovable anchors placed first; flexible entries fill
// the gaps between them. Assembly operates over an arena of entries and
// produces a new placed list; it never mutates its inputs.
type ScheduleAssembler struct {
	Estimator              *TravelEstimator
	Ranker                 *AreaRanker
	Weather                *WeatherFilter
	DefaultDurationMinutes int
}

func NewScheduleAssembler(est *TravelEstimator, ranker *AreaRanker, weather *WeatherFilter) *ScheduleAssembler {
	return &ScheduleAssembler{
		Estimator:              est,
		Ranker:                 ranker,
		Weather:                weather,
		DefaultDurationMinutes: 60,
	}
}

// arena entry: assembly-time state for one parsed entry. floor is the end
// of the nearest placed anchor mentioned before a flexible entry; zero
// means the entry may go anywhere.
type arenaEntry struct {
	src   EntryCandidates
	state domain.EntryState
	floor time.Time
}

// A free block between two consecutive anchors. toArea is empty for the
// trailing block of the day; end is zero when the day is unbounded.
type gap struct {
	start    time.Time
	end      time.Time
	fromArea string
	toArea   string
}

type fitResult struct {
	candidate PlacementCandidate
	start     time.Time
	end       time.Time
	travel    domain.TravelEstimate
}

// Assemble builds the itinerary. Per-entry failures are contained as
// dropped entries; only the caller decides whether an empty result is a
// user-facing failure.
func (a *ScheduleAssembler) Assemble(req AssembleRequest) *domain.Itinerary {
	it := &domain.Itinerary{
		ID:       uuid.NewString(),
		CitySlug: req.CitySlug,
		Date:     req.Date,
	}

	anchorEnds := a.placeFixed(req, it)
	a.fillGaps(req, it, anchorEnds)

	return it
}

// placeFixed places fixed entries in ascending time order. A fixed entry
// whose travel-adjusted window would overlap an earlier anchor is dropped;
// anchors are never displaced. The returned slice maps each input index to
// the placed anchor's end time, zero when the anchor was dropped; fillGaps
// uses it to keep flexible entries after the anchor they were mentioned
// behind.
func (a *ScheduleAssembler) placeFixed(req AssembleRequest, it *domain.Itinerary) []time.Time {
	type timedEntry struct {
		arena arenaEntry
		at    time.Time
		idx   int
	}

	ends := make([]time.Time, len(req.Fixed))
	timed := make([]timedEntry, 0, len(req.Fixed))
	for i, f := range req.Fixed {
		entry := arenaEntry{src: f, state: domain.StateUnresolved}
		at, err := clockOn(req.Date, f.Entry.Time)
		if err != nil {
			a.drop(it, entry.src.Entry, fmt.Sprintf("unusable time %q", f.Entry.Time))
			continue
		}
		timed = append(timed, timedEntry{arena: entry, at: at, idx: i})
	}

	sort.SliceStable(timed, func(i, j int) bool { return timed[i].at.Before(timed[j].at) })

	for _, te := range timed {
		entry := te.arena
		if entry.src.FailReason != "" {
			a.drop(it, entry.src.Entry, entry.src.FailReason)
			continue
		}
		if len(entry.src.Candidates) == 0 {
			a.drop(it, entry.src.Entry, "no venue found")
			continue
		}
		entry.state = domain.StateLocationResolved

		cand := a.selectCandidate(entry.src.Candidates, te.at, req.Forecast)
		entry.state = domain.StateWeatherChecked

		start := te.at
		end := start.Add(a.duration(entry.src.Entry))

		var travel *domain.TravelEstimate
		if n := len(it.Items); n > 0 {
			prev := it.Items[n-1]
			est := a.Estimator.Estimate(prev.AreaName, cand.AreaName, "")
			need := time.Duration(est.RecommendedMinutes()) * time.Minute
			if start.Before(prev.EndTime.Add(need)) {
				a.drop(it, entry.src.Entry, "overlaps an earlier fixed commitment")
				continue
			}
			travel = &est
		}

		if a.place(it, domain.ResolvedActivity{
			Entry:      entry.src.Entry,
			AreaName:   cand.AreaName,
			Venue:      cand.Venue,
			StartTime:  start,
			EndTime:    end,
			TravelFrom: travel,
		}) {
			ends[te.idx] = end
		}
	}
	return ends
}

// fillGaps distributes flexible entries across the free blocks between
// anchors. An entry mentioned after a fixed anchor is only eligible for the
// blocks that follow that anchor. Within one block ordering is greedy
// nearest-neighbor: repeatedly pick the unplaced entry with the smallest
// travel time from the current position, tie broken by input order. This is
// intentionally not a global optimum; it trades optimality for linear-time
// predictability.
func (a *ScheduleAssembler) fillGaps(req AssembleRequest, it *domain.Itinerary, anchorEnds []time.Time) {
	pool := make([]*arenaEntry, 0, len(req.Flexible))
	for _, f := range req.Flexible {
		e := arenaEntry{
			src:   f,
			state: domain.StateUnresolved,
			floor: anchorFloor(anchorEnds, f.Entry.AfterFixed),
		}
		pool = append(pool, &e)
	}

	for _, g := range a.gaps(req, it.Items) {
		curArea := g.fromArea
		curTime := g.start

		for {
			bestIdx := -1
			var best fitResult
			for i, e := range pool {
				if e.state == domain.StatePlaced || e.state == domain.StateDropped {
					continue
				}
				if e.src.FailReason != "" || len(e.src.Candidates) == 0 {
					continue
				}
				// Anchor ends are gap boundaries, so a block either
				// follows the entry's anchor entirely or not at all.
				if !e.floor.IsZero() && g.start.Before(e.floor) {
					continue
				}
				fit, ok := a.bestFit(e, g, curArea, curTime, req.Forecast)
				if !ok {
					continue
				}
				// Strict less-than keeps input order on equal travel times.
				if bestIdx == -1 || fit.travel.RecommendedMinutes() < best.travel.RecommendedMinutes() {
					bestIdx = i
					best = fit
				}
			}
			if bestIdx == -1 {
				break
			}

			e := pool[bestIdx]
			e.state = domain.StateWeatherChecked

			travel := best.travel
			if a.place(it, domain.ResolvedActivity{
				Entry:      e.src.Entry,
				AreaName:   best.candidate.AreaName,
				Venue:      best.candidate.Venue,
				StartTime:  best.start,
				EndTime:    best.end,
				TravelFrom: &travel,
			}) {
				e.state = domain.StatePlaced
				curArea = best.candidate.AreaName
				curTime = best.end
			} else {
				e.state = domain.StateDropped
			}
		}
	}

	for _, e := range pool {
		if e.state == domain.StatePlaced || e.state == domain.StateDropped {
			continue
		}
		reason := "no gap fits without overlapping a fixed commitment"
		if e.src.FailReason != "" {
			reason = e.src.FailReason
		} else if len(e.src.Candidates) == 0 {
			reason = "no venue found"
		}
		e.state = domain.StateDropped
		it.Dropped = append(it.Dropped, domain.DroppedEntry{Entry: e.src.Entry, Reason: reason})
	}
}

// gaps derives the free blocks around the currently placed anchors.
func (a *ScheduleAssembler) gaps(req AssembleRequest, placed []domain.ResolvedActivity) []gap {
	if len(placed) == 0 {
		return []gap{{start: req.DayStart, end: req.DayEnd, fromArea: req.StartArea}}
	}

	out := make([]gap, 0, len(placed)+1)
	first := placed[0]
	if req.DayStart.Before(first.StartTime) {
		out = append(out, gap{
			start:    req.DayStart,
			end:      first.StartTime,
			fromArea: req.StartArea,
			toArea:   first.AreaName,
		})
	}
	for i := 0; i < len(placed)-1; i++ {
		out = append(out, gap{
			start:    placed[i].EndTime,
			end:      placed[i+1].StartTime,
			fromArea: placed[i].AreaName,
			toArea:   placed[i+1].AreaName,
		})
	}
	last := placed[len(placed)-1]
	out = append(out, gap{
		start:    last.EndTime,
		end:      req.DayEnd,
		fromArea: last.AreaName,
	})
	return out
}

// bestFit finds the highest-ranked candidate of the entry that fits the
// block. Candidates in weather-unsuitable conditions are demoted: they are
// only considered once every suitable candidate has been exhausted.
func (a *ScheduleAssembler) bestFit(
	e *arenaEntry,
	g gap,
	curArea string,
	curTime time.Time,
	forecast []ports.ForecastEntry,
) (fitResult, bool) {
	e.state = domain.StateLocationResolved

	// Rank candidate areas for this entry, seeded with the block's leading
	// anchor area to bias toward proximity.
	scores := a.areaScores(e.src.Entry, g.fromArea, curTime)
	ordered := orderCandidates(e.src.Candidates, scores)
	duration := a.duration(e.src.Entry)

	for _, demotedPass := range []bool{false, true} {
		for _, cand := range ordered {
			est := a.Estimator.Estimate(curArea, cand.AreaName, "")
			start := curTime.Add(time.Duration(est.RecommendedMinutes()) * time.Minute)
			end := start.Add(duration)

			if !g.end.IsZero() {
				limit := g.end
				if g.toArea != "" {
					out := a.Estimator.Minutes(cand.AreaName, g.toArea)
					limit = limit.Add(-time.Duration(out) * time.Minute)
				}
				if end.After(limit) {
					continue
				}
			}

			// First pass considers weather-suitable candidates only.
			if !demotedPass {
				if ok, _ := a.Weather.Suitable(cand.Venue, start, forecast); !ok {
					continue
				}
			}

			e.state = domain.StateVenueSelected
			return fitResult{candidate: cand, start: start, end: end, travel: est}, true
		}
	}

	return fitResult{}, false
}

// selectCandidate picks the first candidate, preferring one whose venue is
// weather-suitable at the scheduled time.
func (a *ScheduleAssembler) selectCandidate(cands []PlacementCandidate, at time.Time, forecast []ports.ForecastEntry) PlacementCandidate {
	for _, c := range cands {
		if ok, _ := a.Weather.Suitable(c.Venue, at, forecast); ok {
			return c
		}
	}
	return cands[0]
}

// areaScores ranks all areas for one entry; unranked areas score zero.
func (a *ScheduleAssembler) areaScores(entry domain.ActivityEntry, currentArea string, at time.Time) map[string]int {
	out := make(map[string]int)
	if a.Ranker == nil {
		return out
	}
	var prefs []string
	if entry.VenuePreference != "" {
		prefs = append(prefs, entry.VenuePreference)
	}
	for _, s := range a.Ranker.Rank(entry.Activity, prefs, currentArea, at) {
		out[s.Area.Name] = s.Score
	}
	return out
}

// place inserts the activity in start-time order and re-checks the full
// invariant. A violation removes the just-inserted activity instead of
// corrupting the timeline; the return value reports whether it stayed.
func (a *ScheduleAssembler) place(it *domain.Itinerary, ra domain.ResolvedActivity) bool {
	idx := sort.Search(len(it.Items), func(i int) bool {
		return it.Items[i].StartTime.After(ra.StartTime)
	})
	it.Items = append(it.Items, domain.ResolvedActivity{})
	copy(it.Items[idx+1:], it.Items[idx:])
	it.Items[idx] = ra

	if err := it.Validate(a.Estimator.Minutes); err != nil {
		log.Printf("assembler: invariant violated, dropping %q: %v", ra.Entry.Activity, err)
		it.Items = append(it.Items[:idx], it.Items[idx+1:]...)
		a.drop(it, ra.Entry, "placement would violate schedule ordering")
		return false
	}
	return true
}

// anchorFloor resolves an entry's AfterFixed linkage to a concrete time.
// A dropped anchor defers to the nearest earlier placed one; zero means no
// placed anchor precedes the mention.
func anchorFloor(ends []time.Time, afterFixed int) time.Time {
	if afterFixed > len(ends) {
		afterFixed = len(ends)
	}
	for i := afterFixed; i >= 1; i-- {
		if !ends[i-1].IsZero() {
			return ends[i-1]
		}
	}
	return time.Time{}
}

func (a *ScheduleAssembler) drop(it *domain.Itinerary, entry domain.ActivityEntry, reason string) {
	it.Dropped = append(it.Dropped, domain.DroppedEntry{Entry: entry, Reason: reason})
}

func (a *ScheduleAssembler) duration(e domain.ActivityEntry) time.Duration {
	minutes := e.DurationMinutes
	if minutes <= 0 {
		minutes = a.DefaultDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// orderCandidates sorts candidates by their area's block score, stable so
// the provider's own ranking survives ties.
func orderCandidates(cands []PlacementCandidate, scores map[string]int) []PlacementCandidate {
	out := make([]PlacementCandidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].AreaName] > scores[out[j].AreaName]
	})
	return out
}

// clockOn parses a 24h "15:04" clock string onto the given date.
func clockOn(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
