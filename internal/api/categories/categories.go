package categories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCategoryNotFound is returned for ids absent from the registry.
// Callers must treat it as a client error, not a server error.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryConfig describes one searchable place category. OSMQueries
// holds "tag=value" filters; a place matches if it satisfies any one.
type CategoryConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	OSMQueries  []string `json:"osmQueries"`
	Color       string   `json:"color"`
}

type CategoryGroup struct {
	GroupID    string           `json:"groupId"`
	GroupName  string           `json:"groupName"`
	Icon       string           `json:"icon"`
	Categories []CategoryConfig `json:"categories"`
}

// TravelCategories is the static taxonomy, loaded at process start and
// never mutated. IDs are unique across all groups.
var TravelCategories = []CategoryGroup{
	{
		GroupID:   "eat_drink",
		GroupName: "Eat & Drink",
		Icon:      "🍽️",
		Categories: []CategoryConfig{
			{ID: "restaurants", Name: "Restaurants", Icon: "🍽️", Description: "Dining establishments and restaurants", OSMQueries: []string{"amenity=restaurant"}, Color: "#ef4444"},
			{ID: "cafes", Name: "Cafes", Icon: "☕", Description: "Coffee shops and cafes", OSMQueries: []string{"amenity=cafe"}, Color: "#8b5cf6"},
			{ID: "fast_food", Name: "Fast Food", Icon: "🍟", Description: "Quick service restaurants", OSMQueries: []string{"amenity=fast_food"}, Color: "#f59e0b"},
			{ID: "pubs_bars", Name: "Pubs & Bars", Icon: "🍺", Description: "Pubs, bars, and drinking establishments", OSMQueries: []string{"amenity=pub", "amenity=bar", "amenity=biergarten"}, Color: "#10b981"},
			{ID: "ice_cream", Name: "Ice Cream", Icon: "🍦", Description: "Ice cream shops and gelaterias", OSMQueries: []string{"amenity=ice_cream"}, Color: "#ec4899"},
		},
	},
	{
		GroupID:   "accommodation",
		GroupName: "Stay",
		Icon:      "🏨",
		Categories: []CategoryConfig{
			{ID: "hotels", Name: "Hotels", Icon: "🏨", Description: "Hotels and luxury accommodations", OSMQueries: []string{"tourism=hotel"}, Color: "#3b82f6"},
			{ID: "hostels", Name: "Hostels", Icon: "🏠", Description: "Budget accommodations and hostels", OSMQueries: []string{"tourism=hostel"}, Color: "#06b6d4"},
			{ID: "guest_houses", Name: "Guest Houses", Icon: "🏡", Description: "Guest houses and B&Bs", OSMQueries: []string{"tourism=guest_house"}, Color: "#84cc16"},
			{ID: "camping", Name: "Camping", Icon: "⛺", Description: "Campsites and RV parks", OSMQueries: []string{"tourism=camp_site", "tourism=caravan_site"}, Color: "#22c55e"},
		},
	},
	{
		GroupID:   "attractions",
		GroupName: "Attractions & Leisure",
		Icon:      "🎭",
		Categories: []CategoryConfig{
			{ID: "tourist_attractions", Name: "Tourist Attractions", Icon: "🎯", Description: "Popular tourist attractions and landmarks", OSMQueries: []string{"tourism=attraction"}, Color: "#ef4444"},
			{ID: "museums", Name: "Museums", Icon: "🏛️", Description: "Museums and cultural institutions", OSMQueries: []string{"tourism=museum"}, Color: "#8b5cf6"},
			{ID: "galleries", Name: "Art Galleries", Icon: "🎨", Description: "Art galleries and exhibitions", OSMQueries: []string{"tourism=gallery"}, Color: "#ec4899"},
			{ID: "entertainment", Name: "Entertainment", Icon: "🎪", Description: "Zoos, aquariums, theme parks", OSMQueries: []string{"tourism=zoo", "tourism=aquarium", "tourism=theme_park"}, Color: "#f59e0b"},
			{ID: "viewpoints", Name: "Viewpoints", Icon: "🌄", Description: "Scenic viewpoints and lookouts", OSMQueries: []string{"tourism=viewpoint"}, Color: "#06b6d4"},
			{ID: "parks_nature", Name: "Parks & Nature", Icon: "🌳", Description: "Parks, gardens, and natural areas", OSMQueries: []string{"leisure=park", "leisure=garden", "natural=beach"}, Color: "#22c55e"},
			{ID: "historical", Name: "Historical Sites", Icon: "🏰", Description: "Historical landmarks and monuments", OSMQueries: []string{"historic=monument", "historic=memorial", "historic=castle", "historic=ruins", "historic=archaeological_site"}, Color: "#92400e"},
			{ID: "entertainment_venues", Name: "Entertainment Venues", Icon: "🎭", Description: "Theatres, cinemas, and performance venues", OSMQueries: []string{"amenity=theatre", "amenity=cinema"}, Color: "#7c3aed"},
		},
	},
	{
		GroupID:   "shopping",
		GroupName: "Shopping",
		Icon:      "🛍️",
		Categories: []CategoryConfig{
			{ID: "malls", Name: "Shopping Malls", Icon: "🏢", Description: "Shopping centers and malls", OSMQueries: []string{"shop=mall", "building=commercial"}, Color: "#3b82f6"},
			{ID: "supermarkets", Name: "Supermarkets", Icon: "🛒", Description: "Grocery stores and supermarkets", OSMQueries: []string{"shop=supermarket"}, Color: "#10b981"},
			{ID: "convenience", Name: "Convenience Stores", Icon: "🏪", Description: "Convenience stores and mini marts", OSMQueries: []string{"shop=convenience"}, Color: "#f59e0b"},
			{ID: "souvenirs", Name: "Souvenirs & Gifts", Icon: "🎁", Description: "Souvenir shops and gift stores", OSMQueries: []string{"shop=gift", "shop=souvenir"}, Color: "#ec4899"},
			{ID: "bakeries", Name: "Bakeries", Icon: "🥖", Description: "Bakeries and pastry shops", OSMQueries: []string{"shop=bakery"}, Color: "#92400e"},
			{ID: "markets", Name: "Markets", Icon: "🏪", Description: "Local markets and marketplaces", OSMQueries: []string{"amenity=marketplace"}, Color: "#059669"},
		},
	},
	{
		GroupID:   "transport",
		GroupName: "Transport",
		Icon:      "🚇",
		Categories: []CategoryConfig{
			{ID: "train_stations", Name: "Train Stations", Icon: "🚂", Description: "Railway and train stations", OSMQueries: []string{"railway=station"}, Color: "#3b82f6"},
			{ID: "metro_subway", Name: "Metro/Subway", Icon: "🚇", Description: "Metro and subway stations", OSMQueries: []string{"railway=subway_entrance", "station=subway"}, Color: "#8b5cf6"},
			{ID: "bus_stops", Name: "Bus Stops", Icon: "🚌", Description: "Bus stops and terminals", OSMQueries: []string{"highway=bus_stop", "amenity=bus_station"}, Color: "#f59e0b"},
			{ID: "airports", Name: "Airports", Icon: "✈️", Description: "Airports and airfields", OSMQueries: []string{"aeroway=aerodrome"}, Color: "#06b6d4"},
			{ID: "ferry", Name: "Ferry Terminals", Icon: "⛴️", Description: "Ferry terminals and water transport", OSMQueries: []string{"amenity=ferry_terminal"}, Color: "#0891b2"},
			{ID: "car_rental", Name: "Car Rental", Icon: "🚗", Description: "Car rental agencies", OSMQueries: []string{"amenity=car_rental"}, Color: "#dc2626"},
			{ID: "bike_rental", Name: "Bike Rental", Icon: "🚲", Description: "Bicycle rental stations", OSMQueries: []string{"amenity=bicycle_rental"}, Color: "#16a34a"},
		},
	},
	{
		GroupID:   "safety_health",
		GroupName: "Safety & Health",
		Icon:      "⛑️",
		Categories: []CategoryConfig{
			{ID: "hospitals", Name: "Hospitals", Icon: "🏥", Description: "Hospitals and medical centers", OSMQueries: []string{"amenity=hospital"}, Color: "#dc2626"},
			{ID: "clinics", Name: "Clinics", Icon: "🏥", Description: "Medical clinics and health centers", OSMQueries: []string{"amenity=clinic", "amenity=doctors"}, Color: "#f97316"},
			{ID: "pharmacies", Name: "Pharmacies", Icon: "💊", Description: "Pharmacies and drugstores", OSMQueries: []string{"amenity=pharmacy"}, Color: "#22c55e"},
			{ID: "police", Name: "Police Stations", Icon: "👮", Description: "Police stations and law enforcement", OSMQueries: []string{"amenity=police"}, Color: "#1d4ed8"},
			{ID: "atms", Name: "ATMs", Icon: "🏧", Description: "ATMs and cash machines", OSMQueries: []string{"amenity=atm"}, Color: "#059669"},
			{ID: "banks", Name: "Banks", Icon: "🏦", Description: "Banks and financial services", OSMQueries: []string{"amenity=bank"}, Color: "#0369a1"},
		},
	},
}

// GetCategoryByID looks a category up across all groups.
func GetCategoryByID(categoryID string) (*CategoryConfig, bool) {
	for gi := range TravelCategories {
		for ci := range TravelCategories[gi].Categories {
			if TravelCategories[gi].Categories[ci].ID == categoryID {
				return &TravelCategories[gi].Categories[ci], true
			}
		}
	}
	return nil, false
}

// GetCategoriesByGroup returns the categories of one group, or nil for
// an unknown group id.
func GetCategoriesByGroup(groupID string) []CategoryConfig {
	for _, group := range TravelCategories {
		if group.GroupID == groupID {
			return group.Categories
		}
	}
	return nil
}

// GetAllCategories flattens all groups, preserving insertion order.
func GetAllCategories() []CategoryConfig {
	var all []CategoryConfig
	for _, group := range TravelCategories {
		all = append(all, group.Categories...)
	}
	return all
}

// AllCategoryIDs returns every registered category id, in registry order.
func AllCategoryIDs() []string {
	cats := GetAllCategories()
	ids := make([]string, 0, len(cats))
	for _, cat := range cats {
		ids = append(ids, cat.ID)
	}
	return ids
}

// BuildOverpassQuery compiles a category into an Overpass QL query
// around the given point. Every "tag=value" entry yields a node, way and
// relation clause; the clauses are OR-combined by the union block. The
// output directive requests center coordinates, metadata and at most 50
// results regardless of the caller-side limit.
func BuildOverpassQuery(categoryID string, lat, lon float64, radius int) (string, error) {
	category, ok := GetCategoryByID(categoryID)
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrCategoryNotFound, categoryID)
	}

	latStr := strconv.FormatFloat(lat, 'f', -1, 64)
	lonStr := strconv.FormatFloat(lon, 'f', -1, 64)

	var b strings.Builder
	b.WriteString("[out:json][timeout:30][maxsize:1073741824];\n(\n")
	for _, osmQuery := range category.OSMQueries {
		key, value, found := strings.Cut(osmQuery, "=")
		if !found {
			continue
		}
		for _, element := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&b, "  %s[%q=%q](around:%d,%s,%s);\n", element, key, value, radius, latStr, lonStr)
		}
	}
	b.WriteString(");\nout center meta 50;")
	return b.String(), nil
}
