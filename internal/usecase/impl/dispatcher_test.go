package impl

import (
	"context"
	"testing"

	"diner/internal/domain/command"
	"diner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(userID uuid.UUID) *entity.Session {
	return &entity.Session{ID: uuid.New(), UserID: userID, Cart: entity.NewCart()}
}

func TestDispatcher_AddToCart(t *testing.T) {
	menu := testMenu()
	dispatcher := newTurnDispatcher(menu, &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindAddToCart, ItemName: "hamburger", Quantity: 2, SpecialInstructions: "no onions"},
	})

	require.Len(t, sess.Cart.Lines, 1)
	assert.Equal(t, "Hamburger", sess.Cart.Lines[0].Item.Name)
	assert.Equal(t, 2, sess.Cart.Lines[0].Quantity)
	assert.Equal(t, "no onions", sess.Cart.Lines[0].SpecialInstructions)
	require.Len(t, out.Notices, 1)
	assert.Contains(t, out.Notices[0], "Added Hamburger")
}

func TestDispatcher_AddUnknownItem(t *testing.T) {
	dispatcher := newTurnDispatcher(testMenu(), &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindAddToCart, ItemName: "Sushi", Quantity: 1},
	})

	assert.True(t, sess.Cart.IsEmpty())
	require.Len(t, out.Notices, 1)
	assert.Contains(t, out.Notices[0], "not found")
}

func TestDispatcher_DuplicateCommandAppliedOnce(t *testing.T) {
	dispatcher := newTurnDispatcher(testMenu(), &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)
	ctx := context.Background()

	add := command.Command{Kind: command.KindAddToCart, ItemName: "Fries", Quantity: 1}

	dispatcher.Apply(ctx, sess, []command.Command{add, add})
	dispatcher.Apply(ctx, sess, []command.Command{add})

	require.Len(t, sess.Cart.Lines, 1)
	assert.Equal(t, 1, sess.Cart.Lines[0].Quantity)
}

func TestDispatcher_SameItemDifferentQuantityBothApply(t *testing.T) {
	dispatcher := newTurnDispatcher(testMenu(), &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)

	dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindAddToCart, ItemName: "Fries", Quantity: 1},
		{Kind: command.KindAddToCart, ItemName: "Fries", Quantity: 2},
	})

	require.Len(t, sess.Cart.Lines, 1)
	assert.Equal(t, 3, sess.Cart.Lines[0].Quantity)
}

func TestDispatcher_ClearRunsBeforeAddsInBatch(t *testing.T) {
	dispatcher := newTurnDispatcher(testMenu(), &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)
	sess.Cart.Add(testMenu()[1], 1, "")

	// Text order is add-then-clear; the clear must still run first so the
	// add survives.
	dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindAddToCart, ItemName: "Hamburger", Quantity: 1},
		{Kind: command.KindClearCart},
	})

	require.Len(t, sess.Cart.Lines, 1)
	assert.Equal(t, "Hamburger", sess.Cart.Lines[0].Item.Name)
}

func TestDispatcher_RemoveMissingItemIsSilent(t *testing.T) {
	dispatcher := newTurnDispatcher(testMenu(), &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindRemoveFromCart, ItemName: "Hamburger", Quantity: 1},
	})

	assert.Empty(t, out.Notices)
	assert.Empty(t, out.Messages)
}

func TestDispatcher_ShowCartEmitsSummaryMessage(t *testing.T) {
	menu := testMenu()
	dispatcher := newTurnDispatcher(menu, &fakeOrderUsecase{}, testLogger())
	sess := newTestSession(uuid.Nil)
	sess.Cart.Add(menu[0], 2, "no onions")

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindShowCart},
	})

	require.Len(t, out.Messages, 1)
	assert.Equal(t, entity.RoleAssistant, out.Messages[0].Role)
	assert.Equal(t, "2x Hamburger (no onions): $6.90\n\nTotal: $6.90", out.Messages[0].Content)
}

func TestDispatcher_PlaceOrderRequiresSignIn(t *testing.T) {
	orders := &fakeOrderUsecase{}
	dispatcher := newTurnDispatcher(testMenu(), orders, testLogger())
	sess := newTestSession(uuid.Nil)
	sess.Cart.Add(testMenu()[0], 1, "")

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindPlaceOrder},
	})

	assert.Empty(t, orders.placed)
	assert.False(t, sess.Cart.IsEmpty())
	require.Len(t, out.Notices, 1)
	assert.Contains(t, out.Notices[0], "sign in")
}

func TestDispatcher_PlaceOrderEmptyCart(t *testing.T) {
	orders := &fakeOrderUsecase{}
	dispatcher := newTurnDispatcher(testMenu(), orders, testLogger())
	sess := newTestSession(uuid.New())

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindPlaceOrder},
	})

	assert.Empty(t, orders.placed)
	require.Len(t, out.Notices, 1)
	assert.Contains(t, out.Notices[0], "empty")
}

func TestDispatcher_PlaceOrderSuccessClearsCart(t *testing.T) {
	menu := testMenu()
	orders := &fakeOrderUsecase{}
	dispatcher := newTurnDispatcher(menu, orders, testLogger())
	sess := newTestSession(uuid.New())
	sess.Cart.Add(menu[0], 2, "no onions")

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindPlaceOrder},
	})

	require.Len(t, orders.placed, 1)
	assert.Equal(t, sess.UserID, orders.placed[0].UserID)
	require.Len(t, orders.placed[0].Lines, 1)
	assert.Equal(t, "Hamburger", orders.placed[0].Lines[0].Name)
	assert.InDelta(t, 6.90, orders.placed[0].Subtotal, 0.0001)

	assert.True(t, sess.Cart.IsEmpty())
	require.Len(t, out.Messages, 1)
	assert.Contains(t, out.Messages[0].Content, "order has been placed")
}

func TestDispatcher_PlaceOrderFailureKeepsCart(t *testing.T) {
	menu := testMenu()
	orders := &fakeOrderUsecase{err: errors.New("db down")}
	dispatcher := newTurnDispatcher(menu, orders, testLogger())
	sess := newTestSession(uuid.New())
	sess.Cart.Add(menu[0], 1, "")

	out := dispatcher.Apply(context.Background(), sess, []command.Command{
		{Kind: command.KindPlaceOrder},
	})

	assert.False(t, sess.Cart.IsEmpty())
	assert.Empty(t, out.Messages)
	require.Len(t, out.Notices, 1)
	assert.Contains(t, out.Notices[0], "try again")
}
