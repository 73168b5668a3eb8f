package repository

import (
	"context"
	"errors"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// Orders are write-once from this service's perspective; status transitions
// happen in kitchen-side tooling.
type OrderRepository interface {
	// Create persists a new order together with its lines.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUser returns a user's orders, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
