package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CartLine is one merged entry in a cart: a menu item, how many of it, and
// any special instructions. Two lines never reference the same item with the
// same instructions; Cart.Add merges them instead.
type CartLine struct {
	ID                  uuid.UUID
	Item                *MenuItem
	Quantity            int
	SpecialInstructions string
}

// LinePrice returns the price of the whole line (unit price times quantity).
func (l *CartLine) LinePrice() float64 {
	return l.Item.Price * float64(l.Quantity)
}

// Cart is the ordered collection of cart lines for one session. A cart is
// owned by exactly one session and must only be mutated by that session's
// owner; the session store serializes access.
type Cart struct {
	Lines []*CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add merges the given item into the cart. When a line for the same menu item
// with identical special instructions exists, its quantity is incremented;
// otherwise a new line is appended. A quantity below one defaults to one.
func (c *Cart) Add(item *MenuItem, quantity int, specialInstructions string) *CartLine {
	if quantity < 1 {
		quantity = 1
	}

	for _, line := range c.Lines {
		if line.Item.ID == item.ID && line.SpecialInstructions == specialInstructions {
			line.Quantity += quantity

			return line
		}
	}

	line := &CartLine{
		ID:                  uuid.New(),
		Item:                item,
		Quantity:            quantity,
		SpecialInstructions: specialInstructions,
	}
	c.Lines = append(c.Lines, line)

	return line
}

// RemoveByName removes up to quantity units of the first line whose item name
// matches case-insensitively. A quantity below one, or one at least as large
// as the line's current quantity, removes the line entirely. Returns false
// when no line matches.
func (c *Cart) RemoveByName(name string, quantity int) bool {
	for i, line := range c.Lines {
		if !strings.EqualFold(line.Item.Name, name) {
			continue
		}

		if quantity < 1 || quantity >= line.Quantity {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			line.Quantity -= quantity
		}

		return true
	}

	return false
}

// RemoveLine removes the line with the given identifier. Returns false when
// the line is not in the cart.
func (c *Cart) RemoveLine(id uuid.UUID) bool {
	for i, line := range c.Lines {
		if line.ID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

			return true
		}
	}

	return false
}

// SetQuantity updates the quantity of the line with the given identifier.
// A quantity below one removes the line.
func (c *Cart) SetQuantity(id uuid.UUID, quantity int) bool {
	for _, line := range c.Lines {
		if line.ID == id {
			if quantity < 1 {
				return c.RemoveLine(id)
			}
			line.Quantity = quantity

			return true
		}
	}

	return false
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total is the subtotal of the cart before tax, recomputed on demand.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.LinePrice()
	}

	return total
}

// ItemCount is the number of units across all lines, recomputed on demand.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}

	return count
}

// Summary renders the cart as transcript text: one line per cart line with
// quantity, name, instructions and line price, followed by the subtotal.
func (c *Cart) Summary() string {
	if c.IsEmpty() {
		return "Your cart is empty."
	}

	var b strings.Builder
	for _, line := range c.Lines {
		instructions := ""
		if line.SpecialInstructions != "" {
			instructions = fmt.Sprintf(" (%s)", line.SpecialInstructions)
		}
		fmt.Fprintf(&b, "%dx %s%s: $%.2f\n", line.Quantity, line.Item.Name, instructions, line.LinePrice())
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f", c.Total())

	return b.String()
}

// Clone returns a deep copy of the cart's lines. Menu items are shared; they
// are immutable from the cart's perspective.
func (c *Cart) Clone() *Cart {
	clone := &Cart{Lines: make([]*CartLine, len(c.Lines))}
	for i, line := range c.Lines {
		copied := *line
		clone.Lines[i] = &copied
	}

	return clone
}
