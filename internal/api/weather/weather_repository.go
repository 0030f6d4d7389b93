package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/travel-buddy-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-buddy-api/config"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// ForecastSample is one 3-hour slice of an OpenWeather forecast reply.
type ForecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

type forecastResponse struct {
	List []ForecastSample `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
}

var _ Repository = (*RepositoryImpl)(nil)

// Repository fetches raw forecast data from OpenWeather.
type Repository interface {
	Forecast(ctx context.Context, lat, lon string) ([]ForecastSample, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	client *http.Client
	cfg    *config.Config
}

func NewRepository(cfg *config.Config, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		client: &http.Client{},
		cfg:    cfg,
	}
}

// Forecast calls the free 5-day/3-hour forecast endpoint in metric
// units. The API key is read from the environment at call time.
func (r *RepositoryImpl) Forecast(ctx context.Context, lat, lon string) ([]ForecastSample, error) {
	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		return nil, types.ErrMissingAPIKey
	}

	openWeather := r.cfg.Upstreams.OpenWeather

	ctx, cancel := context.WithTimeout(ctx, openWeather.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lon", lon)
	params.Set("units", "metric")
	params.Set("appid", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openWeather.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	start := time.Now()
	resp, err := r.client.Do(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("service", "openweather"),
		attribute.Int("status", status),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: openweather", types.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("%w: openweather: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.ErrorContext(ctx, "OpenWeather returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: openweather returned 401", types.ErrUpstreamAuth)
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: openweather returned 429", types.ErrUpstreamRateLimited)
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: openweather returned %d", types.ErrUpstreamUnavailable, resp.StatusCode)
		default:
			return nil, fmt.Errorf("openweather API error: %d", resp.StatusCode)
		}
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return forecast.List, nil
}
