package usecase

import (
	"context"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaceOrderInput creates an order from a price-frozen cart snapshot.
// Subtotal is the pre-tax cart total; the usecase applies tax and rounding.
type PlaceOrderInput struct {
	UserID   uuid.UUID
	Lines    []entity.OrderLine
	Subtotal float64
}

// OrderUsecase defines order placement and retrieval. Placement is shared by
// the checkout endpoint and the assistant's PLACE_ORDER command, so both
// paths compute totals identically.
type OrderUsecase interface {
	// PlaceOrder persists the order, publishes the order-placed event and
	// returns the stored order. The caller is responsible for clearing the
	// cart, and must only do so when PlaceOrder succeeds.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)

	// ListOrders returns the user's order history, most recent first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns one of the user's orders.
	GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*entity.Order, error)

	// PickupQR renders the PNG pickup code for one of the user's orders.
	PickupQR(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) ([]byte, error)
}
