package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burger() *MenuItem {
	return &MenuItem{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "Hamburger", Price: 3.45, Category: "burgers", Available: true}
}

func fries() *MenuItem {
	return &MenuItem{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "Fresh French Fries", Price: 5.95, Category: "sides", Available: true}
}

func TestCart_AddMergesSameItemAndInstructions(t *testing.T) {
	cart := NewCart()

	cart.Add(burger(), 1, "no onions")
	cart.Add(burger(), 2, "no onions")

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCart_AddKeepsDistinctInstructionsSeparate(t *testing.T) {
	cart := NewCart()

	cart.Add(burger(), 1, "")
	cart.Add(burger(), 1, "animal style")

	assert.Len(t, cart.Lines, 2)
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	cart := NewCart()

	cart.Add(burger(), 0, "")

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCart_RemoveByNameIsCaseInsensitive(t *testing.T) {
	cart := NewCart()
	cart.Add(burger(), 2, "")

	removed := cart.RemoveByName("hAmBuRgEr", 1)

	assert.True(t, removed)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCart_RemoveByNameExhaustsLine(t *testing.T) {
	cart := NewCart()
	cart.Add(burger(), 2, "")

	// Quantity >= current removes the whole line; so does an absent quantity.
	assert.True(t, cart.RemoveByName("Hamburger", 5))
	assert.True(t, cart.IsEmpty())

	cart.Add(burger(), 2, "")
	assert.True(t, cart.RemoveByName("Hamburger", 0))
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveByNameMissingIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add(burger(), 1, "")

	assert.False(t, cart.RemoveByName("Milkshake", 1))
	assert.Len(t, cart.Lines, 1)
}

func TestCart_TotalAndCountAreDerived(t *testing.T) {
	cart := NewCart()
	cart.Add(burger(), 2, "")
	cart.Add(fries(), 1, "")

	assert.InDelta(t, 2*3.45+5.95, cart.Total(), 1e-9)
	assert.Equal(t, 3, cart.ItemCount())

	cart.Clear()
	assert.Zero(t, cart.Total())
	assert.Zero(t, cart.ItemCount())
}

func TestCart_Summary(t *testing.T) {
	cart := NewCart()
	assert.Equal(t, "Your cart is empty.", cart.Summary())

	cart.Add(burger(), 2, "no onions")
	cart.Add(fries(), 1, "")

	assert.Equal(t, "2x Hamburger (no onions): $6.90\n1x Fresh French Fries: $5.95\n\nTotal: $12.85", cart.Summary())
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart()
	line := cart.Add(burger(), 1, "")

	assert.True(t, cart.SetQuantity(line.ID, 4))
	assert.Equal(t, 4, cart.ItemCount())

	// Zero removes the line.
	assert.True(t, cart.SetQuantity(line.ID, 0))
	assert.True(t, cart.IsEmpty())

	assert.False(t, cart.SetQuantity(uuid.New(), 1))
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := NewCart()
	cart.Add(burger(), 1, "")

	clone := cart.Clone()
	clone.Lines[0].Quantity = 10

	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestSnapshotCart_FreezesPrices(t *testing.T) {
	cart := NewCart()
	item := burger()
	cart.Add(item, 2, "extra toast")

	lines := SnapshotCart(cart)

	require.Len(t, lines, 1)
	assert.Equal(t, item.ID, lines[0].MenuItemID)
	assert.Equal(t, "Hamburger", lines[0].Name)
	assert.Equal(t, 3.45, lines[0].UnitPrice)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "extra toast", lines[0].SpecialInstructions)

	// Later menu price changes must not affect the snapshot.
	item.Price = 9.99
	assert.Equal(t, 3.45, lines[0].UnitPrice)
}
