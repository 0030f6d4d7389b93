package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

func TestEnrichItineraryBackfillsCoordinates(t *testing.T) {
	itinerary := types.EnrichedItinerary{
		Destination: "Paris",
		Days:        1,
		Budget:      "moderate",
		Itinerary: []types.ItineraryDayPlan{
			{Day: 1, Places: []types.EnrichedPlace{
				{Name: "Eiffel Tower", Time: "morning"},
			}},
		},
	}
	inputs := []types.TripPlace{
		{Name: "Eiffel Tower", Lat: "48.8584", Lon: "2.2945", Type: "attraction"},
	}

	enrichItinerary(&itinerary, inputs)

	scheduled := itinerary.Itinerary[0].Places[0]
	assert.Equal(t, "48.8584", scheduled.Lat)
	assert.Equal(t, "2.2945", scheduled.Lon)
	assert.Equal(t, "attraction", scheduled.Type)

	require.Len(t, itinerary.EnrichedPlaces, 1)
	enriched := itinerary.EnrichedPlaces[0]
	assert.Equal(t, "Visit Eiffel Tower during your trip to Paris", enriched.Description)
	assert.InDelta(t, 4.0, enriched.Rating, 1e-9)
	assert.Equal(t, "Paris area", enriched.Address)
	assert.Equal(t, "attraction", enriched.Category, "category falls back to the place type")
	assert.Equal(t, "point_of_interest", enriched.Subcategory)
}

func TestEnrichItineraryMatchesNamesBySubstring(t *testing.T) {
	itinerary := types.EnrichedItinerary{
		Destination: "Paris",
		Itinerary: []types.ItineraryDayPlan{
			{Day: 1, Places: []types.EnrichedPlace{
				{Name: "the louvre museum", Time: "afternoon"},
			}},
		},
	}
	inputs := []types.TripPlace{
		{Name: "Louvre", Lat: "48.8606", Lon: "2.3376"},
	}

	enrichItinerary(&itinerary, inputs)

	scheduled := itinerary.Itinerary[0].Places[0]
	assert.Equal(t, "48.8606", scheduled.Lat)
	assert.Equal(t, "2.3376", scheduled.Lon)
}

func TestEnrichItineraryUnmatchedPlaceKeepsEmptyCoordinates(t *testing.T) {
	itinerary := types.EnrichedItinerary{
		Destination: "Paris",
		Itinerary: []types.ItineraryDayPlan{
			{Day: 1, Places: []types.EnrichedPlace{
				{Name: "Secret Spot", Time: "evening"},
			}},
		},
	}

	enrichItinerary(&itinerary, []types.TripPlace{{Name: "Louvre", Lat: "48.8606", Lon: "2.3376"}})

	scheduled := itinerary.Itinerary[0].Places[0]
	assert.Empty(t, scheduled.Lat)
	assert.Empty(t, scheduled.Lon)

	// Defaults still apply in the flat list.
	require.Len(t, itinerary.EnrichedPlaces, 1)
	assert.Equal(t, "tourist_attraction", itinerary.EnrichedPlaces[0].Category)
}

func TestEnrichItineraryPreservesModelFields(t *testing.T) {
	itinerary := types.EnrichedItinerary{
		Destination: "Lisbon",
		Itinerary: []types.ItineraryDayPlan{
			{Day: 1, Places: []types.EnrichedPlace{
				{
					Name: "Belém Tower", Lat: "38.6916", Lon: "-9.2160", Time: "morning",
					Description: "Iconic fortified tower", Rating: 4.7,
					Address: "Av. Brasília", Category: "historic", Subcategory: "fortification",
				},
			}},
		},
	}

	enrichItinerary(&itinerary, nil)

	enriched := itinerary.EnrichedPlaces[0]
	assert.Equal(t, "Iconic fortified tower", enriched.Description)
	assert.InDelta(t, 4.7, enriched.Rating, 1e-9)
	assert.Equal(t, "Av. Brasília", enriched.Address)
	assert.Equal(t, "historic", enriched.Category)
	assert.Equal(t, "fortification", enriched.Subcategory)
}
