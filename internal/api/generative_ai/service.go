package generativeAI

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/travel-buddy-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-buddy-api/app/ratelimit"
	"github.com/FACorreiaa/travel-buddy-api/config"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

// LLMClient is the completion contract consumed by the planner and chat
// services. Implemented by GroqClient; mocked in tests.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (*Completion, error)
}

// Completion is one model reply plus the provider's token accounting.
type Completion struct {
	Text       string
	Model      string
	TokensUsed int
}

var _ LLMClient = (*GroqClient)(nil)

// GroqClient talks to Groq's OpenAI-compatible chat completions API.
// The API key is read from the environment at call time so a missing
// key surfaces as a request error, never a startup crash.
type GroqClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	gate       *ratelimit.Gate
	baseURL    string
	model      string
	timeout    time.Duration
}

func NewGroqClient(cfg *config.Config, gate *ratelimit.Gate, logger *slog.Logger) *GroqClient {
	groq := cfg.Upstreams.Groq

	model := groq.Model
	if override := os.Getenv("GROQ_MODEL"); override != "" {
		model = override
	}

	return &GroqClient{
		logger:     logger,
		httpClient: &http.Client{},
		gate:       gate,
		baseURL:    groq.BaseURL,
		model:      model,
		timeout:    groq.Timeout,
	}
}

// Model returns the model identifier requests are sent with.
func (c *GroqClient) Model() string {
	return c.model
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends one chat completion request. Calls are serialized
// through the rate gate; temperature and maxTokens vary per use case.
func (c *GroqClient) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (*Completion, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, types.ErrMissingAPIKey
	}

	l := c.logger.With(slog.String("service", "GroqComplete"), slog.String("model", c.model))
	m := metrics.Get()

	waited, err := c.gate.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate gate wait aborted: %w", err)
	}
	if waited > 0 {
		l.DebugContext(ctx, "Rate limiting AI request", slog.Duration("waited", waited))
	}
	m.RateGateWaitSeconds.Record(ctx, waited.Seconds())

	payload, err := json.Marshal(groqChatRequest{
		Model: c.model,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        1,
		Stream:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.gate.Mark()

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	attrs := metric.WithAttributes(
		attribute.String("service", "groq"),
		attribute.Int("status", status),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: groq", types.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("%w: groq: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: groq: reading body: %v", types.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		l.ErrorContext(ctx, "Groq returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: groq returned 401", types.ErrUpstreamAuth)
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: groq returned 429", types.ErrUpstreamRateLimited)
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: groq returned %d", types.ErrUpstreamUnavailable, resp.StatusCode)
		default:
			return nil, fmt.Errorf("groq API error: %d", resp.StatusCode)
		}
	}

	var chatResponse groqChatResponse
	if err := json.Unmarshal(body, &chatResponse); err != nil {
		return nil, fmt.Errorf("failed to decode groq response: %w", err)
	}

	if len(chatResponse.Choices) == 0 {
		return nil, types.ErrEmptyAIResponse
	}
	content := strings.TrimSpace(chatResponse.Choices[0].Message.Content)
	if content == "" {
		return nil, types.ErrEmptyAIResponse
	}

	if chatResponse.Usage.TotalTokens > 0 {
		m.LLMTokensTotal.Add(ctx, int64(chatResponse.Usage.TotalTokens),
			metric.WithAttributes(attribute.String("model", c.model)))
	}

	l.InfoContext(ctx, "Chat completion finished",
		slog.Int("tokens_used", chatResponse.Usage.TotalTokens),
		slog.Duration("duration", time.Since(start)),
	)

	return &Completion{
		Text:       content,
		Model:      c.model,
		TokensUsed: chatResponse.Usage.TotalTokens,
	}, nil
}
