package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-buddy-api/config"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

func newTestRepository(serverURL string) *RepositoryImpl {
	var cfg config.Config
	cfg.Upstreams.OpenWeather.BaseURL = serverURL
	cfg.Upstreams.OpenWeather.Timeout = 5 * time.Second
	return NewRepository(&cfg, testLogger())
}

func TestForecastMissingAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	repo := newTestRepository("http://localhost:1")
	_, err := repo.Forecast(context.Background(), "1", "2")
	assert.ErrorIs(t, err, types.ErrMissingAPIKey)
}

func TestForecastSendsMetricQuery(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "38.72", q.Get("lat"))
		assert.Equal(t, "-9.14", q.Get("lon"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "test-key", q.Get("appid"))
		_, _ = w.Write([]byte(`{"list": [{"dt": 1756450800, "main": {"temp": 21.5}, "weather": [{"main": "Clear"}], "wind": {"speed": 3.2}, "pop": 0.1}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	samples, err := repo.Forecast(context.Background(), "38.72", "-9.14")
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.InDelta(t, 21.5, samples[0].Main.Temp, 1e-9)
	assert.Equal(t, "Clear", samples[0].Weather[0].Main)
}

func TestForecastStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, types.ErrUpstreamAuth},
		{"rate limited", http.StatusTooManyRequests, types.ErrUpstreamRateLimited},
		{"server error", http.StatusBadGateway, types.ErrUpstreamUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENWEATHER_API_KEY", "test-key")

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			repo := newTestRepository(server.URL)
			_, err := repo.Forecast(context.Background(), "1", "2")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
