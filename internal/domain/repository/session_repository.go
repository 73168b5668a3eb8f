package repository

import (
	"context"
	"errors"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a conversation session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository owns per-session conversational state: the transcript
// and the cart. Implementations must serialize access per session; the
// callback passed to WithSession runs under the session's lock, so carts are
// only ever mutated by one caller at a time.
type SessionRepository interface {
	// WithSession runs fn with exclusive access to the session, creating it
	// (seeded with the initial greeting) if it does not exist yet. A non-nil
	// userID binds the session to that user on first touch.
	WithSession(ctx context.Context, id uuid.UUID, userID uuid.UUID, fn func(s *entity.Session) error) error

	// ViewSession runs fn with exclusive access to an existing session.
	// Returns ErrSessionNotFound when the session does not exist.
	ViewSession(ctx context.Context, id uuid.UUID, fn func(s *entity.Session) error) error

	// ListByUser returns session summaries for a user, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error)

	// Delete removes a session and its cart.
	Delete(ctx context.Context, id uuid.UUID) error
}
