package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
)

const planTimeout = 60 * time.Second

type PlanHandler struct {
	Planner *services.Planner
	Repo    ports.ItineraryRepository
}

// Plan turns a free-text day request into a scheduled itinerary.
// Parse failures and empty results map onto 422; only infrastructure
// faults surface as 500.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, r, http.StatusBadRequest, "query is required")
		return
	}
	if req.City != "" && req.City != h.Planner.City.Slug {
		writeError(w, r, http.StatusBadRequest, "unknown city")
		return
	}

	loc, err := time.LoadLocation(h.Planner.City.Timezone)
	if err != nil {
		loc = time.UTC
	}

	date := time.Now().In(loc)
	if req.Date != "" {
		date, err = time.ParseInLocation("2006-01-02", req.Date, loc)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	ctx, cancel := context.WithTimeout(r.Context(), planTimeout)
	defer cancel()

	it, err := h.Planner.PlanDay(ctx, services.PlanDayRequest{
		Query:     req.Query,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case ports.IsParseError(err):
			writeError(w, r, http.StatusUnprocessableEntity, "couldn't understand the request, try rephrasing")
		case errors.Is(err, services.ErrNothingPlanned):
			writeError(w, r, http.StatusUnprocessableEntity, "no activities could be planned from the request")
		default:
			log.Printf("plan day failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	// Persistence is best-effort; the caller still gets the plan when the
	// history store is down.
	if h.Repo != nil {
		if err := h.Repo.SaveItinerary(ctx, it); err != nil {
			log.Printf("save itinerary %s failed: %v", it.ID, err)
		}
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(it))
}

func toItineraryResponse(it *domain.Itinerary) dto.ItineraryResponse {
	res := dto.ItineraryResponse{
		ID:    it.ID,
		City:  it.CitySlug,
		Date:  it.Date.Format("2006-01-02"),
		Items: make([]dto.ItineraryItemResponse, 0, len(it.Items)),
	}

	for _, item := range it.Items {
		out := dto.ItineraryItemResponse{
			Activity:        item.Entry.Activity,
			Area:            item.AreaName,
			VenueName:       item.Venue.Name,
			VenueAddress:    item.Venue.Address,
			VenueRating:     item.Venue.Rating,
			StartTime:       item.StartTime,
			EndTime:         item.EndTime,
			VenuePreference: item.Entry.VenuePreference,
		}
		if item.TravelFrom != nil {
			out.TravelFromPrev = &dto.TravelResponse{
				Mode:    string(item.TravelFrom.RecommendedMode),
				Minutes: item.TravelFrom.RecommendedMinutes(),
			}
		}
		res.Items = append(res.Items, out)
	}

	for _, d := range it.Dropped {
		res.Dropped = append(res.Dropped, dto.DroppedEntryResponse{
			Activity: d.Entry.Activity,
			Reason:   d.Reason,
		})
	}
	return res
}
