package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	generativeAI "github.com/FACorreiaa/travel-buddy-api/internal/api/generative_ai"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// Temperature and token limits per use case. Trip plans need stable
// JSON output; free-text itineraries can run a little looser.
const (
	tripPlanTemperature  = 0.3
	tripPlanMaxTokens    = 4000
	itineraryTemperature = 0.6
	itineraryMaxTokens   = 2048
)

var _ Service = (*ServiceImpl)(nil)

// Service generates trip plans and day-by-day itineraries.
type Service interface {
	GenerateTripPlan(ctx context.Context, req types.TripPlanRequest) (*types.TripPlanResponse, error)
	GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	llm    generativeAI.LLMClient
}

func NewService(llm generativeAI.LLMClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		llm:    llm,
	}
}

// GenerateTripPlan asks the model for a structured JSON itinerary over
// the user's selected places, then validates and enriches the result.
func (s *ServiceImpl) GenerateTripPlan(ctx context.Context, req types.TripPlanRequest) (*types.TripPlanResponse, error) {
	l := s.logger.With(
		slog.String("service", "GenerateTripPlan"),
		slog.String("destination", req.Destination.Name),
		slog.Int("days", req.Days),
		slog.String("budget", req.Budget),
	)
	l.InfoContext(ctx, "Generating trip plan", slog.Int("places", len(req.Places)))

	start := time.Now()
	completion, err := s.llm.Complete(ctx, tripPlanSystemPrompt, buildTripPlanUserPrompt(req),
		tripPlanTemperature, tripPlanMaxTokens)
	if err != nil {
		return nil, err
	}

	cleaned := cleanJSONResponse(completion.Text)

	var itinerary types.EnrichedItinerary
	if err := json.Unmarshal([]byte(cleaned), &itinerary); err != nil {
		l.ErrorContext(ctx, "Model produced malformed JSON", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAIResponse, err)
	}

	if itinerary.Destination == "" || itinerary.Days == 0 || itinerary.Budget == "" || itinerary.Itinerary == nil {
		l.ErrorContext(ctx, "Model reply missing required itinerary fields")
		return nil, types.ErrIncompleteItinerary
	}

	enrichItinerary(&itinerary, req.Places)

	generationTime := time.Since(start).Milliseconds()
	l.InfoContext(ctx, "Trip plan generated",
		slog.Int64("generation_time_ms", generationTime),
		slog.Int("tokens_used", completion.TokensUsed),
	)

	return &types.TripPlanResponse{
		Success:   true,
		Itinerary: &itinerary,
		LLMInfo: types.LLMInfo{
			Model:          completion.Model,
			TokensUsed:     completion.TokensUsed,
			GenerationTime: generationTime,
		},
	}, nil
}

// GenerateItinerary asks the model for a free-text day-by-day plan and
// parses it into structured days.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	l := s.logger.With(
		slog.String("service", "GenerateItinerary"),
		slog.String("destination", req.Destination),
		slog.Int("days", req.Days),
	)
	l.InfoContext(ctx, "Generating itinerary", slog.Any("interests", req.Interests))

	completion, err := s.llm.Complete(ctx, itinerarySystemPrompt, buildItineraryUserPrompt(req),
		itineraryTemperature, itineraryMaxTokens)
	if err != nil {
		return nil, err
	}

	itinerary := parseItineraryText(completion.Text, req.Days)
	l.InfoContext(ctx, "Itinerary generated", slog.Int("parsed_days", len(itinerary)))

	return &types.ItineraryResponse{Itinerary: itinerary}, nil
}
