package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered customer account. The ordering core only needs the
// opaque identifier; profile data exists for the account endpoints.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string // bcrypt hash; never serialized outward.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is one active login session for a user. The raw token is only
// ever held by the client; the server stores its hash.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the refresh token is past its expiry.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
