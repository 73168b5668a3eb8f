package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaxRate is the sales tax applied at order placement.
const TaxRate = 0.0825

// OrderStatus tracks an order through the fulfillment pipeline. The ordering
// core only ever creates orders in StatusPending; later transitions belong to
// kitchen-side tooling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderLine is a price-frozen snapshot of a cart line at submission time.
// UnitPrice is copied from the menu item so later menu edits never change
// what the customer was charged.
type OrderLine struct {
	ID                  uuid.UUID
	MenuItemID          uuid.UUID
	Name                string
	UnitPrice           float64
	Quantity            int
	SpecialInstructions string
}

// Order is a placed order. Immutable after creation from this service's
// perspective.
type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Lines     []OrderLine
	Subtotal  float64 // Sum of line prices before tax.
	Total     float64 // Subtotal plus tax, rounded to cents.
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnapshotCart converts the cart's current lines into price-frozen order
// lines.
func SnapshotCart(cart *Cart) []OrderLine {
	lines := make([]OrderLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, OrderLine{
			ID:                  uuid.New(),
			MenuItemID:          line.Item.ID,
			Name:                line.Item.Name,
			UnitPrice:           line.Item.Price,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	return lines
}
