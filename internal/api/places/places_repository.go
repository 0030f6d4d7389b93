package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/travel-buddy-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-buddy-api/config"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// NominatimPlace is one element of a Nominatim /search reply. Nominatim
// sends place_id as a number; the client schema wants a string.
type NominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	Type        string      `json:"type"`
}

// NominatimDetails is the subset of a Nominatim /details reply we read.
// Centroid coordinates are GeoJSON order: [lon, lat].
type NominatimDetails struct {
	Centroid struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"centroid"`
	NameDetails struct {
		Name string `json:"name"`
	} `json:"namedetails"`
	Address struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Country  string `json:"country"`
		Postcode string `json:"postcode"`
	} `json:"address"`
	DisplayName  string `json:"display_name"`
	OpeningHours string `json:"opening_hours"`
	Website      string `json:"website"`
}

type OverpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OverpassElement is one node/way/relation from an Overpass reply. Ways
// and relations carry their coordinates in Center.
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *OverpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// Ensure implementation satisfies the interface
var _ Repository = (*RepositoryImpl)(nil)

// Repository is the upstream data-access contract for place search:
// Nominatim for geocoding, Overpass for POI queries.
type Repository interface {
	Search(ctx context.Context, query string) ([]NominatimPlace, error)
	Details(ctx context.Context, placeID string) (*NominatimDetails, error)
	QueryOverpass(ctx context.Context, query string) ([]OverpassElement, error)
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

// Search runs a Nominatim forward geocoding query, capped at 5 results.
func (r *RepositoryImpl) Search(ctx context.Context, query string) ([]NominatimPlace, error) {
	nominatim := r.cfg.Upstreams.Nominatim

	ctx, cancel := context.WithTimeout(ctx, nominatim.Timeout)
	defer cancel()

	searchURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=5&addressdetails=1",
		nominatim.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nominatim search request: %w", err)
	}
	req.Header.Set("User-Agent", nominatim.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	body, err := r.do(ctx, req, "nominatim")
	if err != nil {
		return nil, err
	}

	var places []NominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim search response: %w", err)
	}
	return places, nil
}

// Details fetches a single place record by Nominatim place id.
func (r *RepositoryImpl) Details(ctx context.Context, placeID string) (*NominatimDetails, error) {
	nominatim := r.cfg.Upstreams.Nominatim

	ctx, cancel := context.WithTimeout(ctx, nominatim.Timeout)
	defer cancel()

	detailsURL := fmt.Sprintf("%s/details?place_id=%s&format=json",
		nominatim.BaseURL, url.QueryEscape(placeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nominatim details request: %w", err)
	}
	req.Header.Set("User-Agent", nominatim.UserAgent)
	req.Header.Set("Accept", "application/json")

	body, err := r.do(ctx, req, "nominatim")
	if err != nil {
		return nil, err
	}

	var details NominatimDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim details response: %w", err)
	}
	return &details, nil
}

// QueryOverpass submits a compiled Overpass QL query to the interpreter.
func (r *RepositoryImpl) QueryOverpass(ctx context.Context, query string) ([]OverpassElement, error) {
	overpass := r.cfg.Upstreams.Overpass

	ctx, cancel := context.WithTimeout(ctx, overpass.Timeout)
	defer cancel()

	queryURL := fmt.Sprintf("%s?data=%s", overpass.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("User-Agent", overpass.UserAgent)
	req.Header.Set("Accept", "application/json")

	body, err := r.do(ctx, req, "overpass")
	if err != nil {
		return nil, err
	}

	var response overpassResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}
	return response.Elements, nil
}

// do executes the request, records upstream metrics and maps transport
// and status failures onto the shared upstream error taxonomy.
func (r *RepositoryImpl) do(ctx context.Context, req *http.Request, service string) ([]byte, error) {
	start := time.Now()
	resp, err := r.client.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("service", service),
		attribute.Int("status", status),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", types.ErrUpstreamTimeout, service)
		}
		return nil, fmt.Errorf("%w: %s: %v", types.ErrUpstreamUnavailable, service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.ErrorContext(ctx, "Upstream returned non-OK status",
			slog.String("service", service),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)
		return nil, statusError(service, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading body: %v", types.ErrUpstreamUnavailable, service, err)
	}
	return body, nil
}

func statusError(service string, status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s returned 401", types.ErrUpstreamAuth, service)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned 403", types.ErrUpstreamDenied, service)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned 429", types.ErrUpstreamRateLimited, service)
	case status >= 500:
		return fmt.Errorf("%w: %s returned %d", types.ErrUpstreamUnavailable, service, status)
	default:
		return fmt.Errorf("%s API error: %d", service, status)
	}
}
