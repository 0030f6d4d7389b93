package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// enrichItinerary backfills coordinates the model dropped and fills in
// default display fields, mutating the itinerary in place. Scheduled
// places keep exactly what the model produced apart from the coordinate
// backfill; the defaults land in the flat EnrichedPlaces list.
func enrichItinerary(itinerary *types.EnrichedItinerary, inputPlaces []types.TripPlace) {
	destination := itinerary.Destination

	var enriched []types.EnrichedPlace
	for di := range itinerary.Itinerary {
		day := &itinerary.Itinerary[di]
		for pi := range day.Places {
			place := &day.Places[pi]

			if place.Lat == "" || place.Lon == "" {
				if input, ok := matchInputPlace(place.Name, inputPlaces); ok {
					place.Lat = input.Lat
					place.Lon = input.Lon
					place.Type = input.Type
				}
			}

			enriched = append(enriched, withDefaults(*place, destination))
		}
	}
	itinerary.EnrichedPlaces = enriched
}

// matchInputPlace finds the input place whose name contains, or is
// contained in, the model's place name, case-insensitively.
func matchInputPlace(name string, inputPlaces []types.TripPlace) (types.TripPlace, bool) {
	lowered := strings.ToLower(name)
	for _, input := range inputPlaces {
		inputName := strings.ToLower(input.Name)
		if strings.Contains(inputName, lowered) || strings.Contains(lowered, inputName) {
			return input, true
		}
	}
	return types.TripPlace{}, false
}

func withDefaults(place types.EnrichedPlace, destination string) types.EnrichedPlace {
	if place.Description == "" {
		place.Description = fmt.Sprintf("Visit %s during your trip to %s", place.Name, destination)
	}
	if place.Rating == 0 {
		place.Rating = 4.0
	}
	if place.Address == "" {
		place.Address = destination + " area"
	}
	if place.Category == "" {
		if place.Type != "" {
			place.Category = place.Type
		} else {
			place.Category = "tourist_attraction"
		}
	}
	if place.Subcategory == "" {
		place.Subcategory = "point_of_interest"
	}
	return place
}
