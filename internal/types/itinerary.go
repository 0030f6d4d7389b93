package types

type ItineraryRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
}

// ItineraryDay is one parsed day of a free-text itinerary. Day numbers
// come from the model's own "Day N" headers and are not renumbered.
type ItineraryDay struct {
	Day        int      `json:"day"`
	Activities []string `json:"activities"`
}

type ItineraryResponse struct {
	Itinerary []ItineraryDay `json:"itinerary"`
}
