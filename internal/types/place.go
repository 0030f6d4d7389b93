package types

// AutocompletePrediction is a single geocoding suggestion. Coordinates
// stay decimal-degree strings end to end, matching what Nominatim emits.
type AutocompletePrediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

type AutocompleteResponse struct {
	Predictions []AutocompletePrediction `json:"predictions"`
}

// PlaceAddress is the structured address block of a place-details reply.
type PlaceAddress struct {
	Road     string `json:"road,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

type PlaceDetails struct {
	PlaceID      string        `json:"place_id"`
	Name         string        `json:"name"`
	Lat          string        `json:"lat"`
	Lon          string        `json:"lon"`
	Address      *PlaceAddress `json:"address,omitempty"`
	OpeningHours string        `json:"opening_hours,omitempty"`
	Website      string        `json:"website,omitempty"`
}

type DetailsResponse struct {
	Details PlaceDetails `json:"details"`
}

// NearbyPlace is one Overpass element mapped to the client schema.
type NearbyPlace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Address     string `json:"address,omitempty"`
	Amenity     string `json:"amenity,omitempty"`
}

type CategoryInfo struct {
	RequestedCategory string `json:"requested_category"`
	CategoryName      string `json:"category_name"`
	TotalResults      int    `json:"total_results"`
}

type NearbyResponse struct {
	Places              []NearbyPlace `json:"places"`
	CategoryInfo        CategoryInfo  `json:"category_info"`
	AvailableCategories []string      `json:"available_categories,omitempty"`
}

// NearbyParams carries the validated query parameters of a nearby search.
type NearbyParams struct {
	Lat      float64
	Lon      float64
	Radius   int
	Category string
	Limit    int
}
