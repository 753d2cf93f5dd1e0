package dto

import "time"

type PlanRequest struct {
	Query     string `json:"query"`
	Date      string `json:"date"`       // YYYY-MM-DD, default today
	StartTime string `json:"start_time"` // optional 24h HH:MM
	EndTime   string `json:"end_time"`   // optional 24h HH:MM
	City      string `json:"city"`       // city slug
}

type TravelResponse struct {
	Mode    string `json:"mode"`
	Minutes int    `json:"minutes"`
}

type ItineraryItemResponse struct {
	Activity        string          `json:"activity"`
	Area            string          `json:"area"`
	VenueName       string          `json:"venue_name"`
	VenueAddress    string          `json:"venue_address"`
	VenueRating     float64         `json:"venue_rating,omitempty"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	TravelFromPrev  *TravelResponse `json:"travel_from_previous,omitempty"`
	VenuePreference string          `json:"venue_preference,omitempty"`
}

type DroppedEntryResponse struct {
	Activity string `json:"activity"`
	Reason   string `json:"reason"`
}

type ItineraryResponse struct {
	ID      string                  `json:"id"`
	City    string                  `json:"city"`
	Date    string                  `json:"date"`
	Items   []ItineraryItemResponse `json:"items"`
	Dropped []DroppedEntryResponse  `json:"dropped,omitempty"`
}

type ListItinerariesResponse struct {
	Itineraries []ItineraryResponse `json:"itineraries"`
}
