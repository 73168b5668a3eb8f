package usecase

import (
	"context"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddCartItemInput adds a menu item to a session's cart.
type AddCartItemInput struct {
	MenuItemID          uuid.UUID `json:"menuItemId" validate:"required"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"specialInstructions"`
}

// UpdateCartLineInput changes the quantity of one cart line.
type UpdateCartLineInput struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// --- Output DTOs ---

// CartLineView is the outward representation of one cart line.
type CartLineView struct {
	ID                  uuid.UUID `json:"id"`
	MenuItemID          uuid.UUID `json:"menuItemId"`
	Name                string    `json:"name"`
	UnitPrice           float64   `json:"unitPrice"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	LinePrice           float64   `json:"linePrice"`
}

// CartView is the outward representation of a session's cart with its
// derived values.
type CartView struct {
	Lines     []CartLineView `json:"lines"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"itemCount"`
	Summary   string         `json:"summary"`
}

// CartUsecase drives the direct (non-conversational) cart operations used by
// the cart drawer UI. It shares the per-session cart with the chat path, so
// both see the same state.
type CartUsecase interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, input *AddCartItemInput) (*CartView, error)
	UpdateLine(ctx context.Context, sessionID uuid.UUID, lineID uuid.UUID, input *UpdateCartLineInput) (*CartView, error)
	RemoveLine(ctx context.Context, sessionID uuid.UUID, lineID uuid.UUID) (*CartView, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)

	// Checkout places an order from the session's current cart through the
	// order usecase, then clears the cart. The cart survives intact when
	// order placement fails.
	Checkout(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) (*entity.Order, error)
}
