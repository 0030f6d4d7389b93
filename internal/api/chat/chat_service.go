package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	generativeAI "github.com/FACorreiaa/travel-buddy-api/internal/api/generative_ai"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

const chatTemperature = 0.8

const chatSystemPrompt = `You are a knowledgeable and friendly travel assistant. You help users with:
- Travel planning and destination advice
- Local customs, culture, and etiquette
- Transportation and accommodation recommendations
- Food and dining suggestions
- Activities and attractions
- Budget planning and money-saving tips
- Travel safety and health considerations
- Visa, documentation, and travel requirements
- Weather and best times to visit
- Local language tips and communication

Always provide helpful, accurate, and practical advice. Be conversational but informative.
If you're not sure about current information (like visa requirements or travel restrictions),
advise the user to check official sources.`

var _ Service = (*ServiceImpl)(nil)

// Service answers free-form travel questions.
type Service interface {
	SendMessage(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error)
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

// SendMessage forwards one user message to the model, prepending the
// client-held conversation context when present.
func (s *ServiceImpl) SendMessage(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	messageID := uuid.NewString()
	l := s.logger.With(slog.String("service", "SendMessage"), slog.String("message_id", messageID))

	userPrompt := req.Message
	if req.Context != "" {
		userPrompt = fmt.Sprintf("Context from our previous conversation:\n%s\n\nCurrent question: %s",
			req.Context, req.Message)
	}

	completion, err := s.llm.Complete(ctx, chatSystemPrompt, userPrompt, chatTemperature, 2048)
	if err != nil {
		return nil, err
	}

	l.InfoContext(ctx, "Chat reply generated",
		slog.Int("tokens_used", completion.TokensUsed),
		slog.Bool("with_context", req.Context != ""),
	)

	return &types.ChatResponse{Reply: completion.Text}, nil
}
