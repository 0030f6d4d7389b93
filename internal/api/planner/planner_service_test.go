package planner

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/FACorreiaa/travel-buddy-api/internal/api/generative_ai"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// MockLLMClient is a mock implementation of generativeAI.LLMClient
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (*generativeAI.Completion, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, temperature, maxTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generativeAI.Completion), args.Error(1)
}

func newTestPlannerService(llm generativeAI.LLMClient) *ServiceImpl {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(llm, logger)
}

func tripRequest() types.TripPlanRequest {
	return types.TripPlanRequest{
		Destination: types.TripDestination{Name: "Paris", Lat: "48.8566", Lon: "2.3522"},
		Places: []types.TripPlace{
			{Name: "Eiffel Tower", Lat: "48.8584", Lon: "2.2945", Type: "attraction"},
		},
		Days:   2,
		Budget: "moderate",
	}
}

const tripPlanReply = "```json\n" + `{
  "destination": "Paris",
  "days": 2,
  "budget": "moderate",
  "itinerary": [
    {"day": 1, "places": [{"name": "Eiffel Tower", "time": "morning"}]}
  ]
}` + "\n```"

func TestGenerateTripPlanSuccess(t *testing.T) {
	llm := new(MockLLMClient)
	llm.On("Complete", mock.Anything, tripPlanSystemPrompt, mock.Anything, 0.3, 4000).
		Return(&generativeAI.Completion{Text: tripPlanReply, Model: "llama3-70b-8192", TokensUsed: 512}, nil)

	svc := newTestPlannerService(llm)
	resp, err := svc.GenerateTripPlan(context.Background(), tripRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "llama3-70b-8192", resp.LLMInfo.Model)
	assert.Equal(t, 512, resp.LLMInfo.TokensUsed)
	assert.GreaterOrEqual(t, resp.LLMInfo.GenerationTime, int64(0))

	require.NotNil(t, resp.Itinerary)
	require.Len(t, resp.Itinerary.Itinerary, 1)

	// Coordinates backfilled from the input place, defaults filled in.
	scheduled := resp.Itinerary.Itinerary[0].Places[0]
	assert.Equal(t, "48.8584", scheduled.Lat)
	require.Len(t, resp.Itinerary.EnrichedPlaces, 1)
	assert.Equal(t, "point_of_interest", resp.Itinerary.EnrichedPlaces[0].Subcategory)

	llm.AssertExpectations(t)
}

func TestGenerateTripPlanMalformedJSON(t *testing.T) {
	llm := new(MockLLMClient)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&generativeAI.Completion{Text: "Sorry, I cannot produce JSON today."}, nil)

	svc := newTestPlannerService(llm)
	_, err := svc.GenerateTripPlan(context.Background(), tripRequest())
	assert.ErrorIs(t, err, types.ErrInvalidAIResponse)
}

func TestGenerateTripPlanIncompleteStructure(t *testing.T) {
	llm := new(MockLLMClient)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&generativeAI.Completion{Text: `{"destination": "Paris", "days": 2}`}, nil)

	svc := newTestPlannerService(llm)
	_, err := svc.GenerateTripPlan(context.Background(), tripRequest())
	assert.ErrorIs(t, err, types.ErrIncompleteItinerary)
}

func TestGenerateTripPlanPropagatesLLMError(t *testing.T) {
	llm := new(MockLLMClient)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, types.ErrUpstreamRateLimited)

	svc := newTestPlannerService(llm)
	_, err := svc.GenerateTripPlan(context.Background(), tripRequest())
	assert.ErrorIs(t, err, types.ErrUpstreamRateLimited)
}

func TestGenerateItineraryParsesModelText(t *testing.T) {
	llm := new(MockLLMClient)
	llm.On("Complete", mock.Anything, itinerarySystemPrompt, mock.Anything, 0.6, 2048).
		Return(&generativeAI.Completion{Text: "Day 1:\n• Morning: Alfama walk\nDay 2:\n• Beach at Cascais"}, nil)

	svc := newTestPlannerService(llm)
	resp, err := svc.GenerateItinerary(context.Background(), types.ItineraryRequest{
		Destination: "Lisbon",
		Days:        3,
		Interests:   []string{"history", "beaches"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Itinerary, 3)
	assert.Equal(t, []string{"Morning: Alfama walk"}, resp.Itinerary[0].Activities)
	assert.Equal(t, []string{flexibleDayActivity}, resp.Itinerary[2].Activities)
	llm.AssertExpectations(t)
}
