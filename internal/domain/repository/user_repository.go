package repository

import (
	"context"
	"errors"
	"time"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrRefreshTokenNotFound is returned when a refresh token does not exist or
// has been revoked.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error
}

// RefreshTokenRepository manages active login sessions for users.
type RefreshTokenRepository interface {
	// Store persists a new refresh token record.
	Store(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a refresh token by its hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// CountActiveByUser returns the number of unexpired tokens for a user.
	CountActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// DeleteOldestByUser removes the user's oldest token, enforcing the
	// concurrent-session limit.
	DeleteOldestByUser(ctx context.Context, userID uuid.UUID) error

	// Delete revokes a refresh token by its hash.
	Delete(ctx context.Context, tokenHash string) error
}
