package places

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-buddy-api/config"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

func newTestRepository(serverURL string) *RepositoryImpl {
	var cfg config.Config
	cfg.Upstreams.Nominatim.BaseURL = serverURL
	cfg.Upstreams.Nominatim.UserAgent = "TravelBuddy/test"
	cfg.Upstreams.Nominatim.Timeout = 5 * time.Second
	cfg.Upstreams.Overpass.BaseURL = serverURL
	cfg.Upstreams.Overpass.UserAgent = "TravelBuddy/test"
	cfg.Upstreams.Overpass.Timeout = 5 * time.Second
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRepository(&cfg, logger)
}

func TestSearchDecodesNominatimReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TravelBuddy/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "lisbon", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"place_id": 12345, "display_name": "Lisbon, Portugal", "lat": "38.72", "lon": "-9.14", "type": "city"}]`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	results, err := repo.Search(context.Background(), "lisbon")
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Numeric place_id arrives as a json.Number, string form preserved.
	assert.Equal(t, "12345", results[0].PlaceID.String())
	assert.Equal(t, "Lisbon, Portugal", results[0].DisplayName)
}

func TestQueryOverpassDecodesElements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("data"), "out center meta 50;")
		_, _ = w.Write([]byte(`{"elements": [{"type": "way", "id": 7, "center": {"lat": 38.7, "lon": -9.1}, "tags": {"name": "LX Factory"}}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	elements, err := repo.QueryOverpass(context.Background(), "[out:json];\n(\n);\nout center meta 50;")
	require.NoError(t, err)
	require.Len(t, elements, 1)
	require.NotNil(t, elements[0].Center)
	assert.InDelta(t, 38.7, elements[0].Center.Lat, 1e-9)
	assert.Equal(t, "LX Factory", elements[0].Tags["name"])
}

func TestUpstreamStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, types.ErrUpstreamAuth},
		{"forbidden", http.StatusForbidden, types.ErrUpstreamDenied},
		{"rate limited", http.StatusTooManyRequests, types.ErrUpstreamRateLimited},
		{"server error", http.StatusBadGateway, types.ErrUpstreamUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			repo := newTestRepository(server.URL)
			_, err := repo.Search(context.Background(), "x")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
