package api

import (
	"net/http"

	"itinerary-planner-service/internal/api/handlers"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, repo ports.ItineraryRepository) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Planner: planner, Repo: repo}
	areaHandler := &handlers.AreaHandler{City: planner.City, KB: planner.KB}
	itinHandler := &handlers.ItineraryHandler{Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plan", planHandler.Plan)
	mux.HandleFunc("/areas", areaHandler.List)
	mux.HandleFunc("/itineraries", itinHandler.List)

	return loggingMiddleware(requestIDMiddleware(mux))
}
