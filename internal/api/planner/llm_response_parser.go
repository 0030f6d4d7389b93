package planner

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

var (
	dayHeaderPattern = regexp.MustCompile(`(?i)^Day (\d+):?`)
	bulletPattern    = regexp.MustCompile(`^[•\-\*\d]`)
	bulletPrefix     = regexp.MustCompile(`^[•\-\*\d\.\)\s]+`)
)

const flexibleDayActivity = "Free time / Flexible day for personal exploration"

// parseItineraryText extracts a structured day list from a free-text
// model reply. Day numbers from the "Day N" headers are kept as written,
// days without activities are dropped, and the result is padded with
// placeholder days or truncated so it always has exactly expectedDays
// entries.
func parseItineraryText(response string, expectedDays int) []types.ItineraryDay {
	var itinerary []types.ItineraryDay

	currentDay := 0
	var currentActivities []string

	flush := func() {
		if currentDay > 0 && len(currentActivities) > 0 {
			itinerary = append(itinerary, types.ItineraryDay{
				Day:        currentDay,
				Activities: currentActivities,
			})
		}
	}

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)

		if match := dayHeaderPattern.FindStringSubmatch(trimmed); match != nil {
			flush()
			currentDay = parseDayNumber(match[1])
			currentActivities = nil
			continue
		}

		if bulletPattern.MatchString(trimmed) {
			activity := strings.TrimSpace(bulletPrefix.ReplaceAllString(trimmed, ""))
			if activity != "" {
				currentActivities = append(currentActivities, activity)
			}
		}
	}
	flush()

	for len(itinerary) < expectedDays {
		itinerary = append(itinerary, types.ItineraryDay{
			Day:        len(itinerary) + 1,
			Activities: []string{flexibleDayActivity},
		})
	}
	return itinerary[:expectedDays]
}

func parseDayNumber(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// cleanJSONResponse strips markdown code fences and any prose around
// the JSON object models like to add despite instructions.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}
