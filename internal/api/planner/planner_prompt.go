package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

const tripPlanSystemPrompt = `You are an expert travel planner assistant. Create detailed day-by-day itineraries that are practical and enjoyable.

CRITICAL INSTRUCTIONS:
1. You MUST respond with ONLY valid JSON in the exact format specified
2. Include ALL provided places across the specified days
3. Distribute places logically across days (don't overcrowd)
4. Consider travel time and location proximity
5. Assign appropriate times: morning (9AM-12PM), afternoon (12PM-6PM), evening (6PM-10PM)
6. Provide rich descriptions and context for each place
7. Suggest appropriate ratings and categories based on place types

Budget Guidelines:
- low: Focus on free attractions, street food, walking, public transport
- moderate: Mix of paid attractions, casual dining, some taxi rides
- luxury: Premium experiences, fine dining, private transport, exclusive tours

Response Format: Return ONLY valid JSON with no additional text or explanations.`

// buildTripPlanUserPrompt renders the user message for a trip plan,
// embedding the place list and the required output schema.
func buildTripPlanUserPrompt(req types.TripPlanRequest) string {
	placeLines := make([]string, 0, len(req.Places))
	for _, place := range req.Places {
		line := fmt.Sprintf("- %s (%s, %s)", place.Name, place.Lat, place.Lon)
		if place.Type != "" {
			line += fmt.Sprintf(" [%s]", place.Type)
		}
		placeLines = append(placeLines, line)
	}

	return fmt.Sprintf(`Create a %d-day travel itinerary for %s with a %s budget.

Places to include (with coordinates):
%s

Requirements:
1. Include ALL %d places across %d days
2. Distribute places logically by proximity and travel time
3. Each day should have 2-4 activities maximum
4. Consider %s budget constraints
5. Assign morning, afternoon, or evening times appropriately
6. Provide rich descriptions for each place
7. Suggest realistic ratings (1-5) and categories

Respond with this EXACT JSON format:
{
  "destination": "%s",
  "days": %d,
  "budget": "%s",
  "itinerary": [
    {
      "day": 1,
      "places": [
        {
          "name": "Exact Place Name",
          "lat": "coordinates from input",
          "lon": "coordinates from input",
          "time": "morning",
          "type": "attraction type if available",
          "description": "Rich description of what to expect",
          "rating": 4.2,
          "address": "General area or street",
          "category": "Main category like 'tourist_attraction'",
          "subcategory": "Specific type like 'museum' or 'park'"
        }
      ]
    }
  ]
}

Important: Use the EXACT place names and coordinates I provided above.`,
		req.Days, req.Destination.Name, req.Budget,
		strings.Join(placeLines, "\n"),
		len(req.Places), req.Days,
		req.Budget,
		req.Destination.Name, req.Days, req.Budget)
}

const itinerarySystemPrompt = `You are a professional travel itinerary planner. Create detailed, realistic day-by-day schedules
that optimize travel time, consider opening hours, and balance activities with rest. Always include specific timing,
locations, and practical details like transportation between activities.`

// buildItineraryUserPrompt renders the user message for a free-text
// day-by-day itinerary.
func buildItineraryUserPrompt(req types.ItineraryRequest) string {
	return fmt.Sprintf(`Create a %d-day detailed itinerary for %s based on these interests: %s.

Requirements:
- Provide exactly %d days of activities
- Each day should have 4-6 specific activities
- Include timing suggestions (morning, afternoon, evening)
- Consider travel time between locations
- Mix must-see attractions with local experiences
- Include meal suggestions and rest breaks
- Provide brief descriptions for each activity

Format your response as a structured day-by-day breakdown. For each day, list the activities as separate bullet points.

Example format:
Day 1:
• Morning: Visit [Location] - [Brief description]
• Late Morning: [Activity] - [Brief description]
• Afternoon: [Activity] - [Brief description]
• etc.`,
		req.Days, req.Destination, strings.Join(req.Interests, ", "), req.Days)
}
