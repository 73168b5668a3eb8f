package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry in a conversation transcript. Messages are immutable
// once written, with one exception: the in-progress assistant message of a
// streaming turn is replaced wholesale as the response grows.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the per-session conversational state: the transcript, the cart,
// and the turn flag. Sessions are pure data; the session store owns locking
// and serializes all access to a session.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID // uuid.Nil while the customer is not signed in.
	Title     string
	Messages  []Message
	Cart      *Cart
	Streaming bool // True while a model response is being consumed for this session.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Append adds a message to the end of the transcript.
func (s *Session) Append(role Role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content, CreatedAt: time.Now()})
	s.UpdatedAt = time.Now()
}

// ReplaceAssistant replaces the content of the last message, which must be
// the in-progress assistant message of the current turn.
func (s *Session) ReplaceAssistant(content string) {
	if n := len(s.Messages); n > 0 && s.Messages[n-1].Role == RoleAssistant {
		s.Messages[n-1].Content = content
		s.UpdatedAt = time.Now()
	}
}

// SessionSummary is the sidebar view of a session: enough to list and pick
// conversations without loading transcripts.
type SessionSummary struct {
	ID           uuid.UUID
	Title        string
	MessageCount int
	UpdatedAt    time.Time
}
