package handlers

import (
	"log"
	"net/http"
	"strconv"

	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/ports"
)

type ItineraryHandler struct {
	Repo ports.ItineraryRepository
}

// List returns recently planned itineraries, newest first.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	items, err := h.Repo.ListItineraries(r.Context(), limit)
	if err != nil {
		log.Printf("list itineraries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListItinerariesResponse{Itineraries: make([]dto.ItineraryResponse, 0, len(items))}
	for _, it := range items {
		res.Itineraries = append(res.Itineraries, toItineraryResponse(it))
	}

	writeJSON(w, r, http.StatusOK, res)
}
