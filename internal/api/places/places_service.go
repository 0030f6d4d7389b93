package places

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/FACorreiaa/travel-buddy-api/app/cachestore"
	"github.com/FACorreiaa/travel-buddy-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-buddy-api/app/ratelimit"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/categories"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for place search.
type Service interface {
	Autocomplete(ctx context.Context, query string) (*types.AutocompleteResponse, error)
	GetDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error)
	GetNearby(ctx context.Context, params types.NearbyParams) (*types.NearbyResponse, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cachestore.Store
	gate   *ratelimit.Gate
}

// NewService creates a new places service instance. The cache store and
// rate gate are injected so deployments can tune TTL and interval.
func NewService(repo Repository, cache *cachestore.Store, gate *ratelimit.Gate, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache,
		gate:   gate,
	}
}

// Autocomplete resolves free text into geocoding predictions. Results
// are cached by normalized query; upstream calls go through the
// Nominatim rate gate.
func (s *ServiceImpl) Autocomplete(ctx context.Context, query string) (*types.AutocompleteResponse, error) {
	l := s.logger.With(slog.String("service", "Autocomplete"))
	m := metrics.Get()

	if cached, ok := s.cache.Get(query); ok {
		if response, ok := cached.(*types.AutocompleteResponse); ok {
			l.DebugContext(ctx, "Cache hit for query", slog.String("query", cachestore.NormalizeKey(query)))
			m.CacheHitsTotal.Add(ctx, 1)
			return response, nil
		}
	}
	m.CacheMissesTotal.Add(ctx, 1)

	waited, err := s.gate.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate gate wait aborted: %w", err)
	}
	if waited > 0 {
		l.DebugContext(ctx, "Rate limiting geocoding request", slog.Duration("waited", waited))
	}
	m.RateGateWaitSeconds.Record(ctx, waited.Seconds())

	results, err := s.repo.Search(ctx, query)
	s.gate.Mark()
	if err != nil {
		return nil, err
	}

	predictions := make([]types.AutocompletePrediction, 0, len(results))
	for _, place := range results {
		predictions = append(predictions, types.AutocompletePrediction{
			PlaceID:     place.PlaceID.String(),
			Description: place.DisplayName,
			Lat:         place.Lat,
			Lon:         place.Lon,
			Type:        place.Type,
		})
	}

	response := &types.AutocompleteResponse{Predictions: predictions}
	s.cache.Set(query, response)

	l.InfoContext(ctx, "Fetched geocoding predictions",
		slog.String("query", cachestore.NormalizeKey(query)),
		slog.Int("results", len(predictions)),
	)
	return response, nil
}

// GetDetails fetches and normalizes a single place record.
func (s *ServiceImpl) GetDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error) {
	data, err := s.repo.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}

	// Determine name from available fields
	name := "Unnamed Place"
	switch {
	case data.NameDetails.Name != "":
		name = data.NameDetails.Name
	case data.Address.City != "":
		name = data.Address.City
	case data.Address.Town != "":
		name = data.Address.Town
	case data.DisplayName != "":
		if first, _, _ := strings.Cut(data.DisplayName, ","); first != "" {
			name = first
		}
	}

	lat, lon := "0", "0"
	if len(data.Centroid.Coordinates) >= 2 {
		// GeoJSON centroid: [lon, lat]
		lon = strconv.FormatFloat(data.Centroid.Coordinates[0], 'f', -1, 64)
		lat = strconv.FormatFloat(data.Centroid.Coordinates[1], 'f', -1, 64)
	}

	city := data.Address.City
	if city == "" {
		city = data.Address.Town
	}

	return &types.PlaceDetails{
		PlaceID: placeID,
		Name:    name,
		Lat:     lat,
		Lon:     lon,
		Address: &types.PlaceAddress{
			Road:     data.Address.Road,
			City:     city,
			Country:  data.Address.Country,
			Postcode: data.Address.Postcode,
		},
		OpeningHours: data.OpeningHours,
		Website:      data.Website,
	}, nil
}

// GetNearby compiles the category into an Overpass query, runs it and
// maps the elements onto the client schema. The caller-side limit is
// applied on top of the query's own 50-result cap.
func (s *ServiceImpl) GetNearby(ctx context.Context, params types.NearbyParams) (*types.NearbyResponse, error) {
	category, ok := categories.GetCategoryByID(params.Category)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", categories.ErrCategoryNotFound, params.Category)
	}

	query, err := categories.BuildOverpassQuery(params.Category, params.Lat, params.Lon, params.Radius)
	if err != nil {
		return nil, err
	}

	l := s.logger.With(slog.String("service", "GetNearby"))
	l.DebugContext(ctx, "Searching nearby places",
		slog.String("category", category.Name),
		slog.Float64("lat", params.Lat),
		slog.Float64("lon", params.Lon),
		slog.Int("radius", params.Radius),
		slog.Int("limit", params.Limit),
	)

	elements, err := s.repo.QueryOverpass(ctx, query)
	if err != nil {
		return nil, err
	}

	places := make([]types.NearbyPlace, 0, len(elements))
	for _, element := range elements {
		lat, lon, hasCoords := elementCoordinates(element)
		if !hasCoords || element.Tags["name"] == "" {
			continue
		}
		places = append(places, mapElement(element, lat, lon, params.Category))
		if len(places) == params.Limit {
			break
		}
	}

	l.InfoContext(ctx, "Found nearby places",
		slog.String("category", category.Name),
		slog.Int("results", len(places)),
	)

	return &types.NearbyResponse{
		Places: places,
		CategoryInfo: types.CategoryInfo{
			RequestedCategory: params.Category,
			CategoryName:      category.Name,
			TotalResults:      len(places),
		},
	}, nil
}

// elementCoordinates resolves an element's coordinates, falling back to
// the center point Overpass computes for ways and relations.
func elementCoordinates(element OverpassElement) (lat, lon float64, ok bool) {
	if element.Lat != 0 && element.Lon != 0 {
		return element.Lat, element.Lon, true
	}
	if element.Center != nil && element.Center.Lat != 0 && element.Center.Lon != 0 {
		return element.Center.Lat, element.Center.Lon, true
	}
	return 0, 0, false
}

// typeTagPrecedence orders the OSM tags consulted for the main type.
var typeTagPrecedence = []string{
	"tourism", "amenity", "shop", "historic", "leisure", "natural", "railway", "aeroway",
}

func mapElement(element OverpassElement, lat, lon float64, category string) types.NearbyPlace {
	tags := element.Tags

	mainType := "unknown"
	for _, key := range typeTagPrecedence {
		if tags[key] != "" {
			mainType = tags[key]
			break
		}
	}

	// More specific classification, when the tags carry one.
	subcategory := firstNonEmpty(tags["cuisine"], tags["shop"], tags["historic"], tags["tourism"])

	address := tags["addr:full"]
	if address == "" {
		var parts []string
		for _, key := range []string{"addr:housenumber", "addr:street", "addr:city", "addr:postcode"} {
			if tags[key] != "" {
				parts = append(parts, tags[key])
			}
		}
		address = strings.Join(parts, ", ")
	}

	name := firstNonEmpty(tags["name"], tags["operator"])
	if name == "" {
		name = "Unnamed " + mainType
	}

	return types.NearbyPlace{
		ID:          strconv.FormatInt(element.ID, 10),
		Name:        name,
		Lat:         strconv.FormatFloat(lat, 'f', -1, 64),
		Lon:         strconv.FormatFloat(lon, 'f', -1, 64),
		Type:        mainType,
		Category:    category,
		Subcategory: subcategory,
		Address:     address,
		Amenity:     tags["amenity"],
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
