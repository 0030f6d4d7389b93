package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

const (
	dateLayout   = "2006-01-02"
	maxDaysAhead = 5
)

// ErrInvalidStartDate is returned when startDate is not a YYYY-MM-DD date.
var ErrInvalidStartDate = fmt.Errorf("startDate must be formatted as %s", dateLayout)

var _ Service = (*ServiceImpl)(nil)

// Service aggregates OpenWeather's 3-hour samples into daily trip
// forecasts. Date-window problems come back as a WeatherDateIssue, not
// an error, so clients get a structured explanation with HTTP 200.
type Service interface {
	GetForecast(ctx context.Context, req types.WeatherForecastRequest) (*types.WeatherForecastResponse, *types.WeatherDateIssue, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

// dailyAggregate collects one calendar day's 3-hour samples.
type dailyAggregate struct {
	temps         []float64
	minTemp       float64
	maxTemp       float64
	conditions    map[string]int
	conditionSeen []string
	humidity      []float64
	windSpeed     []float64
	precipitation []float64
}

// GetForecast resolves the trip window against the free tier's 5-day
// horizon, then folds the raw samples into per-day forecasts. Days the
// upstream cannot cover become placeholder entries.
func (s *ServiceImpl) GetForecast(ctx context.Context, req types.WeatherForecastRequest) (*types.WeatherForecastResponse, *types.WeatherDateIssue, error) {
	l := s.logger.With(slog.String("service", "GetForecast"))

	// Missing key outranks date-window problems: a misconfigured
	// deployment must not answer with a success:false date issue.
	if os.Getenv("OPENWEATHER_API_KEY") == "" {
		return nil, nil, types.ErrMissingAPIKey
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, nil, ErrInvalidStartDate
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysFromToday := int(math.Ceil(startDate.Sub(today).Hours() / 24))

	if daysFromToday > maxDaysAhead {
		return nil, &types.WeatherDateIssue{
			Success: false,
			Error:   "Weather forecast not available for selected dates",
			Message: fmt.Sprintf("Your trip starts %d days from now, but the free weather API only provides forecasts up to %d days ahead. Please select a start date within the next %d days.",
				daysFromToday, maxDaysAhead, maxDaysAhead),
			SelectedStartDate: req.StartDate,
			DaysFromToday:     daysFromToday,
			MaxDaysAhead:      maxDaysAhead,
		}, nil
	}

	if daysFromToday < 0 {
		return nil, &types.WeatherDateIssue{
			Success:           false,
			Error:             "Invalid start date",
			Message:           "Trip start date cannot be in the past. Please select a future date.",
			SelectedStartDate: req.StartDate,
			DaysFromToday:     daysFromToday,
		}, nil
	}

	samples, err := s.repo.Forecast(ctx, req.Lat, req.Lon)
	if err != nil {
		return nil, nil, err
	}

	days, dayOrder := groupByDay(samples)

	forecasts := make([]types.DailyForecast, 0, req.Days)
	available := 0
	for i := 0; i < req.Days; i++ {
		dateKey := startDate.AddDate(0, 0, i).Format(dateLayout)
		if day, ok := days[dateKey]; ok {
			forecasts = append(forecasts, buildDailyForecast(dateKey, day))
			available++
		} else {
			forecasts = append(forecasts, placeholderForecast(dateKey))
		}
	}

	endDate := startDate.AddDate(0, 0, req.Days-1).Format(dateLayout)

	message := fmt.Sprintf("Weather forecast for today and next %d days", req.Days)
	if daysFromToday > 0 {
		message = fmt.Sprintf("Weather forecast for %s to %s (%d days)", req.StartDate, endDate, req.Days)
	}

	availableRange := types.DateRange{From: "No data", To: "No data"}
	if len(dayOrder) > 0 {
		availableRange.From = dayOrder[0]
		availableRange.To = dayOrder[len(dayOrder)-1]
	}

	l.InfoContext(ctx, "Forecast assembled",
		slog.String("start", req.StartDate),
		slog.String("end", endDate),
		slog.Int("available_days", available),
		slog.Int("unavailable_days", req.Days-available),
	)

	return &types.WeatherForecastResponse{
		Success:            true,
		Forecasts:          forecasts,
		Location:           types.WeatherLocation{Lat: req.Lat, Lon: req.Lon},
		TripDuration:       req.Days,
		SelectedStartDate:  req.StartDate,
		EndDate:            endDate,
		DaysFromToday:      daysFromToday,
		Note:               "Using free tier API (5-day forecast limit)",
		AvailableDays:      available,
		UnavailableDays:    req.Days - available,
		AvailableDateRange: availableRange,
		Message:            message,
	}, nil, nil
}

// groupByDay buckets the 3-hour samples by UTC calendar day, keeping
// first-seen day order for the available date range.
func groupByDay(samples []ForecastSample) (map[string]*dailyAggregate, []string) {
	days := make(map[string]*dailyAggregate)
	var order []string

	for _, sample := range samples {
		dateKey := time.Unix(sample.Dt, 0).UTC().Format(dateLayout)

		day, ok := days[dateKey]
		if !ok {
			day = &dailyAggregate{
				minTemp:    sample.Main.TempMin,
				maxTemp:    sample.Main.TempMax,
				conditions: make(map[string]int),
			}
			days[dateKey] = day
			order = append(order, dateKey)
		}

		day.temps = append(day.temps, sample.Main.Temp)
		day.minTemp = math.Min(day.minTemp, sample.Main.TempMin)
		day.maxTemp = math.Max(day.maxTemp, sample.Main.TempMax)
		day.humidity = append(day.humidity, sample.Main.Humidity)
		day.windSpeed = append(day.windSpeed, sample.Wind.Speed)
		day.precipitation = append(day.precipitation, sample.Pop)

		if len(sample.Weather) > 0 {
			condition := sample.Weather[0].Main
			if day.conditions[condition] == 0 {
				day.conditionSeen = append(day.conditionSeen, condition)
			}
			day.conditions[condition]++
		}
	}
	return days, order
}

func buildDailyForecast(dateKey string, day *dailyAggregate) types.DailyForecast {
	condition := mostCommonCondition(day)

	return types.DailyForecast{
		Date: dateKey,
		Temp: types.DailyTemp{
			Min: roundInt(day.minTemp),
			Max: roundInt(day.maxTemp),
			// Middle sample approximates midday, first approximates night.
			Day:   roundInt(day.temps[len(day.temps)/2]),
			Night: roundInt(day.temps[0]),
		},
		Weather: types.DailyWeather{
			Main:        condition,
			Description: describeCondition(condition),
			Icon:        conditionIcon(condition),
		},
		Humidity:      roundInt(average(day.humidity)),
		WindSpeed:     roundInt(average(day.windSpeed) * 3.6),
		Precipitation: roundInt(average(day.precipitation) * 100),
	}
}

func placeholderForecast(dateKey string) types.DailyForecast {
	return types.DailyForecast{
		Date: dateKey,
		Weather: types.DailyWeather{
			Main:        "Unknown",
			Description: "forecast not available",
			Icon:        "02d",
		},
		Unavailable: true,
	}
}

// mostCommonCondition picks the condition seen in the most samples,
// first-seen order breaking ties.
func mostCommonCondition(day *dailyAggregate) string {
	mostCommon := "Clear"
	maxCount := 0
	for _, condition := range day.conditionSeen {
		if day.conditions[condition] > maxCount {
			maxCount = day.conditions[condition]
			mostCommon = condition
		}
	}
	return mostCommon
}

func describeCondition(condition string) string {
	switch strings.ToLower(condition) {
	case "clear":
		return "clear sky"
	case "clouds":
		return "scattered clouds"
	case "rain":
		return "light rain"
	case "snow":
		return "light snow"
	case "thunderstorm":
		return "thunderstorm"
	case "drizzle":
		return "light drizzle"
	case "mist", "fog":
		return "mist"
	default:
		return "partly cloudy"
	}
}

func conditionIcon(condition string) string {
	if strings.EqualFold(condition, "clear") {
		return "01d"
	}
	return "02d"
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
