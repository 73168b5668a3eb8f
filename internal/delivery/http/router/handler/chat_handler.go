package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "diner/internal/delivery/context"
	"diner/internal/delivery/http/middleware"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/delivery/http/response"
	"diner/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler serves the conversational ordering flow. Turns are streamed to
// the client as Server-Sent Events.
type ChatHandler struct {
	uc     usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		uc:     uc,
		logger: logger,
	}
}

// turnInput is the body of a streamed chat turn request.
type turnInput struct {
	Text string `json:"text" validate:"required"`
}

// StreamTurn runs one user turn and streams events back as SSE frames:
// data: {...} per event, then data: [DONE].
func (h *ChatHandler) StreamTurn(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	var input *turnInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid turn input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	sink := func(event usecase.TurnEvent) error {
		if event.Done {
			return writeSSE(res, "[DONE]")
		}

		payload, err := json.Marshal(event)
		if err != nil {
			return errors.WithStack(err)
		}

		return writeSSE(res, string(payload))
	}

	streamInput := &usecase.StreamTurnInput{
		SessionID: sessionID,
		UserID:    middleware.UserID(c),
		Text:      input.Text,
	}
	ctx := deliverycontext.WithSessionID(c.Request().Context(), sessionID)
	if err := h.uc.StreamTurn(ctx, streamInput, sink); err != nil {
		h.logger.Error("Chat turn failed",
			slog.String("session_id", sessionID.String()),
			slog.Any("error", err),
		)

		// Headers are already out, so the rejection goes down the stream
		// itself; otherwise the client cannot tell it from a dropped
		// connection.
		if sink(usecase.TurnEvent{Notices: []string{turnFailureNotice(err)}}) == nil {
			_ = sink(usecase.TurnEvent{Done: true})
		}

		return nil
	}

	return nil
}

// turnFailureNotice renders a turn-level failure as the notice sent down the
// event stream.
func turnFailureNotice(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return "Something went wrong, please try again"
}

// writeSSE emits one SSE data frame and flushes it to the client.
func writeSSE(res *echo.Response, data string) error {
	if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
		return errors.WithStack(err)
	}
	res.Flush()

	return nil
}

// ListConversations returns the authenticated user's conversation summaries.
func (h *ChatHandler) ListConversations(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	summaries, err := h.uc.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summaries, "Conversations retrieved successfully")
}

// GetTranscript returns the full message history of a session.
func (h *ChatHandler) GetTranscript(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	messages, err := h.uc.GetTranscript(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Transcript retrieved successfully")
}

// DeleteConversation removes a session, its transcript and its cart.
func (h *ChatHandler) DeleteConversation(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	if err := h.uc.DeleteConversation(c.Request().Context(), sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Conversation deleted"}, "Conversation deleted successfully")
}
