package types

// TripDestination anchors a trip plan. Coordinates are decimal-degree
// strings, as selected by the frontend from autocomplete results.
type TripDestination struct {
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
}

// TripPlace is a place the user picked for the trip. Coordinates come
// from the frontend selection, so they are required on input.
type TripPlace struct {
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
}

type TripPlanRequest struct {
	Destination TripDestination `json:"destination"`
	Places      []TripPlace     `json:"places"`
	Days        int             `json:"days"`
	Budget      string          `json:"budget"`
}

// EnrichedPlace is a scheduled place in the generated itinerary. The
// LLM fills most fields; enrichment backfills coordinates from the input
// places and defaults the display fields when absent.
type EnrichedPlace struct {
	Name        string  `json:"name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Time        string  `json:"time"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Address     string  `json:"address,omitempty"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
}

type ItineraryDayPlan struct {
	Day    int             `json:"day"`
	Places []EnrichedPlace `json:"places"`
}

type EnrichedItinerary struct {
	Destination    string             `json:"destination"`
	Days           int                `json:"days"`
	Budget         string             `json:"budget"`
	Itinerary      []ItineraryDayPlan `json:"itinerary"`
	EnrichedPlaces []EnrichedPlace    `json:"enrichedPlaces"`
}

type LLMInfo struct {
	Model          string `json:"model"`
	TokensUsed     int    `json:"tokens_used,omitempty"`
	GenerationTime int64  `json:"generation_time"`
}

type TripPlanResponse struct {
	Success   bool               `json:"success"`
	Itinerary *EnrichedItinerary `json:"itinerary"`
	LLMInfo   LLMInfo            `json:"llm_info"`
}
