package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travel-buddy-api/internal/api"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

type Handler struct {
	plannerService Service
	logger         *slog.Logger
}

func NewHandler(plannerService Service, logger *slog.Logger) *Handler {
	return &Handler{
		plannerService: plannerService,
		logger:         logger,
	}
}

// GenerateTripPlan handles POST /trip/plan.
func (h *Handler) GenerateTripPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateTripPlan").Start(r.Context(), "GenerateTripPlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trip/plan"),
	))
	defer span.End()

	requestID := uuid.NewString()
	l := h.logger.With(slog.String("handler", "GenerateTripPlan"), slog.String("plan_id", requestID))

	var req types.TripPlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if errs := validateTripPlanRequest(req); len(errs) > 0 {
		l.WarnContext(ctx, "Trip plan validation failed", slog.Any("errors", errs))
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, "Validation failed", strings.Join(errs, ", "))
		return
	}

	response, err := h.plannerService.GenerateTripPlan(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Trip plan generation failed", slog.Any("error", err))
		switch {
		case errors.Is(err, types.ErrMissingAPIKey):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"Groq API key not configured", "Please set GROQ_API_KEY environment variable")
		case errors.Is(err, types.ErrUpstreamAuth):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"Groq API authentication failed", "Invalid API key")
		case errors.Is(err, types.ErrUpstreamRateLimited):
			api.ErrorResponseWithDetails(w, r, http.StatusTooManyRequests,
				"Too many requests to AI service", "Please wait a moment and try again")
		case errors.Is(err, types.ErrEmptyAIResponse):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"Empty response from AI service", "The AI failed to generate an itinerary")
		case errors.Is(err, types.ErrInvalidAIResponse):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"AI returned invalid response format", "The AI generated malformed JSON. Please try again.")
		case errors.Is(err, types.ErrIncompleteItinerary):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"AI returned incomplete itinerary", "Missing required fields: destination, days, budget, or itinerary array")
		case errors.Is(err, types.ErrUpstreamTimeout):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"AI service timeout - the request took too long", "Please try again with fewer places or shorter trip duration")
		default:
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
				"AI service temporarily unavailable", "Please try again in a few minutes")
		}
		return
	}

	// Generated itineraries are never cacheable.
	w.Header().Set("Cache-Control", "no-cache")
	api.WriteJSONResponse(w, r, http.StatusOK, response)
}

func validateTripPlanRequest(req types.TripPlanRequest) []string {
	var errs []string

	if req.Destination.Name == "" || req.Destination.Lat == "" || req.Destination.Lon == "" {
		errs = append(errs, "Destination must include name, lat, and lon")
	}

	if len(req.Places) == 0 {
		errs = append(errs, "Places must be a non-empty array")
	} else {
		for i, place := range req.Places {
			if place.Name == "" || place.Lat == "" || place.Lon == "" {
				errs = append(errs, fmt.Sprintf("Place %d must include name, lat, and lon", i+1))
			}
		}
	}

	if req.Days <= 0 || req.Days > 30 {
		errs = append(errs, "Days must be between 1 and 30")
	}

	switch req.Budget {
	case "low", "moderate", "luxury":
	default:
		errs = append(errs, "Budget must be: low, moderate, or luxury")
	}

	return errs
}

// GenerateItinerary handles POST /itinerary.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateItinerary").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	var missing []string
	if req.Destination == "" {
		missing = append(missing, "destination")
	}
	if req.Days == 0 {
		missing = append(missing, "days")
	}
	if len(req.Interests) == 0 {
		missing = append(missing, "interests")
	}
	if len(missing) > 0 {
		l.WarnContext(ctx, "Missing itinerary fields", slog.Any("missing", missing))
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest,
			"Missing required fields", "Required: "+strings.Join(missing, ", "))
		return
	}

	if req.Days <= 0 || req.Days > 30 {
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest,
			"Invalid days value", "Days must be a positive integer between 1 and 30")
		return
	}

	response, err := h.plannerService.GenerateItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
			"Failed to generate itinerary", err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}
