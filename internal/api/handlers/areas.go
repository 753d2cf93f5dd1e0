package handlers

import (
	"net/http"

	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/knowledge"
)

type AreaHandler struct {
	City domain.CityConfig
	KB   *knowledge.Base
}

// List returns the city's area knowledge in seed order.
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	areas := h.KB.Areas()
	res := dto.ListAreasResponse{
		City:  h.City.Slug,
		Areas: make([]dto.AreaResponse, 0, len(areas)),
	}
	for _, a := range areas {
		res.Areas = append(res.Areas, dto.AreaResponse{
			Name:            a.Name,
			Lat:             a.Coordinates.Lat,
			Lng:             a.Coordinates.Lng,
			Characteristics: a.Characteristics,
			PopularFor:      a.PopularFor,
			Neighbors:       a.Neighbors,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
