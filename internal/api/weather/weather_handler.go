package weather

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travel-buddy-api/internal/api"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

type Handler struct {
	weatherService Service
	logger         *slog.Logger
}

func NewHandler(weatherService Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherService: weatherService,
		logger:         logger,
	}
}

// GetForecast handles POST /weather/forecast.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetForecast").Start(r.Context(), "GetForecast", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/weather/forecast"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetForecast"))

	var req types.WeatherForecastRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Lat == "" || req.Lon == "" || req.StartDate == "" || req.Days == 0 {
		l.WarnContext(ctx, "Missing forecast parameters")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing required parameters: lat, lon, startDate, days")
		return
	}

	if req.Days < 1 || req.Days > 5 {
		api.ErrorResponse(w, r, http.StatusBadRequest,
			"Days must be between 1 and 5 for weather forecast (free tier limitation)")
		return
	}

	forecast, dateIssue, err := h.weatherService.GetForecast(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Forecast failed", slog.Any("error", err))
		switch {
		case errors.Is(err, ErrInvalidStartDate):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrMissingAPIKey):
			api.ErrorResponse(w, r, http.StatusInternalServerError, "OpenWeatherMap API key not configured")
		case errors.Is(err, types.ErrUpstreamAuth),
			errors.Is(err, types.ErrUpstreamRateLimited),
			errors.Is(err, types.ErrUpstreamUnavailable),
			errors.Is(err, types.ErrUpstreamTimeout):
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch weather data")
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	// Date-window problems are structured replies, not HTTP errors.
	if dateIssue != nil {
		api.WriteJSONResponse(w, r, http.StatusOK, dateIssue)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, forecast)
}
