package usecase

import (
	"context"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// StreamTurnInput submits one user turn to a conversation session.
type StreamTurnInput struct {
	SessionID uuid.UUID
	UserID    uuid.UUID // uuid.Nil for guests; PLACE_ORDER requires a real user.
	Text      string
}

// TurnEvent is one update pushed to the transport while a turn streams.
// Text always carries the full cleaned display text so far, never a delta,
// so every event is a prefix-consistent render of the response.
type TurnEvent struct {
	Text    string          `json:"text,omitempty"`
	Notices []string        `json:"notices,omitempty"`
	Message *entity.Message `json:"message,omitempty"` // An extra assistant message appended by a command.
	Done    bool            `json:"done,omitempty"`
}

// TurnSink receives turn events in order. A sink error cancels the turn.
type TurnSink func(event TurnEvent) error

// ChatUsecase drives the conversational ordering flow: one streamed model
// turn at a time per session, with embedded cart commands applied as the
// response arrives.
type ChatUsecase interface {
	// StreamTurn runs one full user turn: append the user message, stream
	// the model response through the command parser, apply extracted
	// commands, and settle the session. Returns ErrTurnInProgress while a
	// prior turn is still streaming.
	StreamTurn(ctx context.Context, input *StreamTurnInput, sink TurnSink) error

	// ListConversations returns the user's conversation summaries.
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error)

	// GetTranscript returns the full message history of a session.
	GetTranscript(ctx context.Context, sessionID uuid.UUID) ([]entity.Message, error)

	// DeleteConversation removes a session, its transcript and its cart.
	DeleteConversation(ctx context.Context, sessionID uuid.UUID) error
}
