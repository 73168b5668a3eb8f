package middleware

import (
	"net/http"
	"strings"

	"diner/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyUserID is where the authenticated user's ID is stored on the
// echo context. Guest requests carry uuid.Nil.
const ContextKeyUserID = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the JWT access token and rejects the request when
// it is missing or invalid.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := m.userIDFromHeader(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		if userID == uuid.Nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}

// OptionalAuthenticate resolves the user when a valid token is present but
// lets guests through with uuid.Nil. The conversational flow serves guests;
// only order placement requires an account.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := m.userIDFromHeader(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}

// userIDFromHeader extracts and validates the bearer token. A missing header
// yields uuid.Nil with no error; a present but invalid token is an error.
func (m *AuthMiddleware) userIDFromHeader(c echo.Context) (uuid.UUID, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return uuid.Nil, errors.New("Invalid token format, must be Bearer token")
	}

	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return uuid.Nil, errors.New("Invalid or expired token")
	}

	return claims.UserID, nil
}

// UserID reads the authenticated user ID set by Authenticate or
// OptionalAuthenticate. Returns uuid.Nil for guests.
func UserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(ContextKeyUserID).(uuid.UUID); ok {
		return id
	}

	return uuid.Nil
}
