package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/travel-buddy-api/app/cachestore"
	appLogger "github.com/FACorreiaa/travel-buddy-api/app/logger"
	"github.com/FACorreiaa/travel-buddy-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-buddy-api/app/ratelimit"
	"github.com/FACorreiaa/travel-buddy-api/app/tracer"
	"github.com/FACorreiaa/travel-buddy-api/config"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/chat"
	generativeAI "github.com/FACorreiaa/travel-buddy-api/internal/api/generative_ai"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/places"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/planner"
	"github.com/FACorreiaa/travel-buddy-api/internal/api/weather"
	"github.com/FACorreiaa/travel-buddy-api/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Server.MetricsPort)
	metrics.InitAppMetrics()

	// --- Dependency Injection ---
	// Upstream politeness gates: Nominatim wants at least ~1 request per
	// second per client, Groq gets its own serialized window.
	nominatimGate := ratelimit.NewGate(cfg.Upstreams.Nominatim.MinInterval)
	groqGate := ratelimit.NewGate(cfg.Upstreams.Groq.MinInterval)
	geocodeCache := cachestore.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)

	placesRepo := places.NewRepository(&cfg, logger)
	placesService := places.NewService(placesRepo, geocodeCache, nominatimGate, logger)
	placesHandler := places.NewHandler(placesService, logger)

	groqClient := generativeAI.NewGroqClient(&cfg, groqGate, logger)

	plannerService := planner.NewService(groqClient, logger)
	plannerHandler := planner.NewHandler(plannerService, logger)

	chatService := chat.NewService(groqClient, logger)
	chatHandler := chat.NewHandler(chatService, logger)

	weatherRepo := weather.NewRepository(&cfg, logger)
	weatherService := weather.NewService(weatherRepo, logger)
	weatherHandler := weather.NewHandler(weatherService, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		PlacesHandler:  placesHandler,
		PlannerHandler: plannerHandler,
		WeatherHandler: weatherHandler,
		ChatHandler:    chatHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // LLM calls can run long
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server terminated with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
