package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/travel-buddy-api/internal/api/chat"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/places"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/planner"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/weather"
)

// Config contains the handlers needed for the router setup.
type Config struct {
	PlacesHandler  *places.Handler
	PlannerHandler *planner.Handler
	WeatherHandler *weather.Handler
	ChatHandler    *chat.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to
// be applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Heartbeat endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/places/autocomplete", cfg.PlacesHandler.Autocomplete)
	r.Get("/places/details", cfg.PlacesHandler.GetDetails)
	r.Get("/places/nearby", cfg.PlacesHandler.GetNearby)

	r.Post("/trip/plan", cfg.PlannerHandler.GenerateTripPlan)
	r.Post("/itinerary", cfg.PlannerHandler.GenerateItinerary)

	r.Post("/weather/forecast", cfg.WeatherHandler.GetForecast)

	r.Post("/chat", cfg.ChatHandler.SendMessage)

	return r
}
