package chat

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travel-buddy-api/internal/api"
	"github.com/FACorreiaa/travel-buddy-api/internal/types"
)

type Handler struct {
	chatService Service
	logger      *slog.Logger
}

func NewHandler(chatService Service, logger *slog.Logger) *Handler {
	return &Handler{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage handles POST /chat.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SendMessage").Start(r.Context(), "SendMessage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SendMessage"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Message == "" {
		l.WarnContext(ctx, "Missing message field")
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest,
			"Missing required fields", "Required: message")
		return
	}

	response, err := h.chatService.SendMessage(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Chat message failed", slog.Any("error", err))
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError,
			"Failed to process chat message", err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}
