// Package service defines domain service contracts implemented by the
// infrastructure layer.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Type   string // "access" or "refresh".
	jwt.RegisteredClaims
}

// TokenService issues and validates the JWT pair used for authentication.
type TokenService interface {
	// GenerateTokens creates a new access/refresh token pair for a user.
	GenerateTokens(userID uuid.UUID) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken returns the digest under which a refresh token is stored.
	// Only the hash ever touches the database.
	HashToken(token string) string

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash validates password strength and returns a salted hash.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the hash.
	Check(password, hash string) bool

	// ValidatePasswordStrength checks a password against the strength policy
	// without hashing it.
	ValidatePasswordStrength(password string) error
}
