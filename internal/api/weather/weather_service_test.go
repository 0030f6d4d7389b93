package weather

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-buddy-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	// Key presence is checked before any date handling; individual tests
	// clear it when they exercise the unconfigured path.
	_ = os.Setenv("OPENWEATHER_API_KEY", "test-key")
	os.Exit(m.Run())
}

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Forecast(ctx context.Context, lat, lon string) ([]ForecastSample, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ForecastSample), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fixedNow pins "today" so date-window math is deterministic.
var fixedNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func newTestWeatherService(repo Repository) *ServiceImpl {
	svc := NewService(repo, testLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func sampleAt(t time.Time, temp float64, condition string, humidity, wind, pop float64) ForecastSample {
	var s ForecastSample
	s.Dt = t.Unix()
	s.Main.Temp = temp
	s.Main.TempMin = temp - 2
	s.Main.TempMax = temp + 2
	s.Main.Humidity = humidity
	s.Wind.Speed = wind
	s.Pop = pop
	s.Weather = []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}{{Main: condition}}
	return s
}

func TestGetForecastAggregatesDays(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	samples := []ForecastSample{
		sampleAt(day.Add(3*time.Hour), 15, "Rain", 80, 3, 0.6),
		sampleAt(day.Add(12*time.Hour), 20, "Rain", 60, 5, 0.4),
		sampleAt(day.Add(18*time.Hour), 18, "Clear", 70, 4, 0.2),
	}

	repo := new(MockRepository)
	repo.On("Forecast", mock.Anything, "38.72", "-9.14").Return(samples, nil)

	svc := newTestWeatherService(repo)
	resp, issue, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "38.72", Lon: "-9.14", StartDate: "2026-08-29", Days: 2,
	})
	require.NoError(t, err)
	require.Nil(t, issue)
	require.NotNil(t, resp)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.TripDuration)
	assert.Equal(t, 1, resp.DaysFromToday)
	assert.Equal(t, "2026-08-30", resp.EndDate)
	assert.Equal(t, "Using free tier API (5-day forecast limit)", resp.Note)
	assert.Equal(t, "Weather forecast for 2026-08-29 to 2026-08-30 (2 days)", resp.Message)
	assert.Equal(t, types.WeatherLocation{Lat: "38.72", Lon: "-9.14"}, resp.Location)

	require.Len(t, resp.Forecasts, 2)

	first := resp.Forecasts[0]
	assert.Equal(t, "2026-08-29", first.Date)
	assert.Equal(t, 13, first.Temp.Min, "lowest temp_min across samples")
	assert.Equal(t, 22, first.Temp.Max, "highest temp_max across samples")
	assert.Equal(t, 20, first.Temp.Day, "middle sample of the day")
	assert.Equal(t, 15, first.Temp.Night, "first sample of the day")
	assert.Equal(t, "Rain", first.Weather.Main, "two of three samples were rain")
	assert.Equal(t, "light rain", first.Weather.Description)
	assert.Equal(t, "02d", first.Weather.Icon)
	assert.Equal(t, 70, first.Humidity)
	assert.Equal(t, 14, first.WindSpeed, "4 m/s average converted to km/h")
	assert.Equal(t, 40, first.Precipitation, "average probability as a percentage")
	assert.False(t, first.Unavailable)

	// No samples for the second day, so it is a placeholder.
	second := resp.Forecasts[1]
	assert.Equal(t, "2026-08-30", second.Date)
	assert.True(t, second.Unavailable)
	assert.Equal(t, "Unknown", second.Weather.Main)
	assert.Equal(t, "forecast not available", second.Weather.Description)

	assert.Equal(t, 1, resp.AvailableDays)
	assert.Equal(t, 1, resp.UnavailableDays)
	assert.Equal(t, types.DateRange{From: "2026-08-29", To: "2026-08-29"}, resp.AvailableDateRange)
}

func TestGetForecastTodayMessage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Forecast", mock.Anything, mock.Anything, mock.Anything).Return([]ForecastSample{}, nil)

	svc := newTestWeatherService(repo)
	resp, issue, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "1", Lon: "2", StartDate: "2026-08-28", Days: 3,
	})
	require.NoError(t, err)
	require.Nil(t, issue)

	assert.Equal(t, 0, resp.DaysFromToday)
	assert.Equal(t, "Weather forecast for today and next 3 days", resp.Message)
	assert.Equal(t, types.DateRange{From: "No data", To: "No data"}, resp.AvailableDateRange)
}

func TestGetForecastMissingKeyOutranksDateIssues(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	repo := new(MockRepository)
	svc := newTestWeatherService(repo)

	// Even with a start date far beyond the forecast window, the missing
	// key must surface first rather than a success:false date reply.
	resp, issue, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "1", Lon: "2", StartDate: "2026-09-10", Days: 2,
	})
	assert.Nil(t, resp)
	assert.Nil(t, issue)
	assert.ErrorIs(t, err, types.ErrMissingAPIKey)
	repo.AssertNotCalled(t, "Forecast")
}

func TestGetForecastStartDateTooFarAhead(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestWeatherService(repo)

	resp, issue, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "1", Lon: "2", StartDate: "2026-09-10", Days: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
	require.NotNil(t, issue)

	assert.False(t, issue.Success)
	assert.Equal(t, "Weather forecast not available for selected dates", issue.Error)
	assert.Equal(t, "Your trip starts 13 days from now, but the free weather API only provides forecasts up to 5 days ahead. Please select a start date within the next 5 days.", issue.Message)
	assert.Equal(t, 13, issue.DaysFromToday)
	assert.Equal(t, 5, issue.MaxDaysAhead)
	repo.AssertNotCalled(t, "Forecast")
}

func TestGetForecastStartDateInPast(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestWeatherService(repo)

	resp, issue, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "1", Lon: "2", StartDate: "2026-08-25", Days: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
	require.NotNil(t, issue)

	assert.False(t, issue.Success)
	assert.Equal(t, "Invalid start date", issue.Error)
	assert.Equal(t, "Trip start date cannot be in the past. Please select a future date.", issue.Message)
	assert.Equal(t, -3, issue.DaysFromToday)
	assert.Zero(t, issue.MaxDaysAhead)
	repo.AssertNotCalled(t, "Forecast")
}

func TestGetForecastBadStartDate(t *testing.T) {
	svc := newTestWeatherService(new(MockRepository))

	_, _, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "1", Lon: "2", StartDate: "28/08/2026", Days: 2,
	})
	assert.ErrorIs(t, err, ErrInvalidStartDate)
}

func TestGetForecastPropagatesRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Forecast", mock.Anything, mock.Anything, mock.Anything).Return(nil, types.ErrUpstreamUnavailable)

	svc := newTestWeatherService(repo)
	_, _, err := svc.GetForecast(context.Background(), types.WeatherForecastRequest{
		Lat: "1", Lon: "2", StartDate: "2026-08-29", Days: 2,
	})
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}
