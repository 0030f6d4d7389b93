package places

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travel-buddy-api/internal/api"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/categories"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

type Handler struct {
	placesService Service
	logger        *slog.Logger
}

func NewHandler(placesService Service, logger *slog.Logger) *Handler {
	return &Handler{
		placesService: placesService,
		logger:        logger,
	}
}

// Autocomplete handles GET /places/autocomplete?q=...
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Autocomplete").Start(r.Context(), "Autocomplete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/autocomplete"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Autocomplete"))

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		l.WarnContext(ctx, "Missing query parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, `Query parameter "q" is required`)
		return
	}

	response, err := h.placesService.Autocomplete(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Autocomplete failed", slog.Any("error", err), slog.String("query", query))
		switch {
		case errors.Is(err, types.ErrUpstreamDenied):
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Geocoding service temporarily unavailable. Please try again later.")
		case errors.Is(err, types.ErrUpstreamRateLimited):
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Too many requests. Please wait a moment and try again.")
		case errors.Is(err, types.ErrUpstreamTimeout):
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Request timeout. Please try again.")
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	api.WriteJSONResponse(w, r, http.StatusOK, response)
}

// GetDetails handles GET /places/details?place_id=...
func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetDetails").Start(r.Context(), "GetDetails", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/details"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetDetails"))

	placeID := r.URL.Query().Get("place_id")
	if placeID == "" {
		l.WarnContext(ctx, "Missing place_id parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, `Query parameter "place_id" is required`)
		return
	}

	details, err := h.placesService.GetDetails(ctx, placeID)
	if err != nil {
		l.ErrorContext(ctx, "Details lookup failed", slog.Any("error", err), slog.String("place_id", placeID))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.DetailsResponse{Details: *details})
}

// GetNearby handles GET /places/nearby?lat=..&lon=..&radius=..&category=..&limit=..
func (h *Handler) GetNearby(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetNearby").Start(r.Context(), "GetNearby", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/nearby"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetNearby"))
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		l.WarnContext(ctx, "Invalid coordinates", slog.String("lat", q.Get("lat")), slog.String("lon", q.Get("lon")))
		nearbyError(w, r, http.StatusBadRequest, `Valid "lat" and "lon" query parameters are required`)
		return
	}

	radius := 2000
	if raw := q.Get("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			nearbyError(w, r, http.StatusBadRequest, "Radius must be between 1 and 50000 meters")
			return
		}
		radius = parsed
	}
	if radius < 1 || radius > 50000 {
		nearbyError(w, r, http.StatusBadRequest, "Radius must be between 1 and 50000 meters")
		return
	}

	limit := 50
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			nearbyError(w, r, http.StatusBadRequest, "Limit must be between 1 and 100")
			return
		}
		limit = parsed
	}
	if limit < 1 || limit > 100 {
		nearbyError(w, r, http.StatusBadRequest, "Limit must be between 1 and 100")
		return
	}

	category := q.Get("category")
	if category == "" {
		category = "tourist_attractions"
	}
	if _, ok := categories.GetCategoryByID(category); !ok {
		l.WarnContext(ctx, "Unknown category requested", slog.String("category", category))
		nearbyError(w, r, http.StatusBadRequest,
			"Category '"+category+"' not found. Please use one of the available categories.")
		return
	}

	response, err := h.placesService.GetNearby(ctx, types.NearbyParams{
		Lat:      lat,
		Lon:      lon,
		Radius:   radius,
		Category: category,
		Limit:    limit,
	})
	if err != nil {
		l.ErrorContext(ctx, "Nearby search failed", slog.Any("error", err), slog.String("category", category))
		switch {
		case errors.Is(err, types.ErrUpstreamTimeout):
			nearbyError(w, r, http.StatusInternalServerError, "Request timeout - the search took too long")
		case errors.Is(err, types.ErrUpstreamUnavailable),
			errors.Is(err, types.ErrUpstreamDenied),
			errors.Is(err, types.ErrUpstreamRateLimited):
			nearbyError(w, r, http.StatusInternalServerError, "External mapping service temporarily unavailable")
		default:
			nearbyError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.AvailableCategories = categories.AllCategoryIDs()
	w.Header().Set("Cache-Control", "public, s-maxage=300")
	api.WriteJSONResponse(w, r, http.StatusOK, response)
}

// nearbyError always carries the category list so clients can recover
// from a bad category without a second round trip.
func nearbyError(w http.ResponseWriter, r *http.Request, status int, message string) {
	api.WriteJSONResponse(w, r, status, map[string]interface{}{
		"error":                message,
		"available_categories": categories.AllCategoryIDs(),
	})
}
