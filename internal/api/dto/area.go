package dto

type AreaResponse struct {
	Name            string   `json:"name"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	Characteristics []string `json:"characteristics"`
	PopularFor      []string `json:"popular_for"`
	Neighbors       []string `json:"neighbors,omitempty"`
}

type ListAreasResponse struct {
	City  string         `json:"city"`
	Areas []AreaResponse `json:"areas"`
}
