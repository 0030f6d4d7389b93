package types

type WeatherForecastRequest struct {
	Lat       string `json:"lat"`
	Lon       string `json:"lon"`
	StartDate string `json:"startDate"`
	Days      int    `json:"days"`
}

type DailyTemp struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Day   int `json:"day"`
	Night int `json:"night"`
}

type DailyWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DailyForecast aggregates OpenWeather's 3-hour samples into one day.
// Unavailable marks placeholder days beyond the upstream's 5-day window.
type DailyForecast struct {
	Date          string       `json:"date"`
	Temp          DailyTemp    `json:"temp"`
	Weather       DailyWeather `json:"weather"`
	Humidity      int          `json:"humidity"`
	WindSpeed     int          `json:"windSpeed"`
	Precipitation int          `json:"precipitation"`
	Unavailable   bool         `json:"unavailable,omitempty"`
}

type WeatherLocation struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type WeatherForecastResponse struct {
	Success            bool            `json:"success"`
	Forecasts          []DailyForecast `json:"forecasts"`
	Location           WeatherLocation `json:"location"`
	TripDuration       int             `json:"tripDuration"`
	SelectedStartDate  string          `json:"selectedStartDate"`
	EndDate            string          `json:"endDate"`
	DaysFromToday      int             `json:"daysFromToday"`
	Note               string          `json:"note"`
	AvailableDays      int             `json:"availableDays"`
	UnavailableDays    int             `json:"unavailableDays"`
	AvailableDateRange DateRange       `json:"availableDateRange"`
	Message            string          `json:"message"`
}

// WeatherDateIssue is the 200-with-success:false reply for start dates
// the free forecast tier cannot cover (too far ahead, or in the past).
type WeatherDateIssue struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	Message           string `json:"message"`
	SelectedStartDate string `json:"selectedStartDate"`
	DaysFromToday     int    `json:"daysFromToday"`
	MaxDaysAhead      int    `json:"maxDaysAhead,omitempty"`
}
