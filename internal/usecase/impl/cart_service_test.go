package impl

import (
	"context"
	"testing"

	"diner/internal/domain/entity"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceFixture struct {
	service  usecase.CartUsecase
	sessions *fakeSessionRepo
	menu     entity.Menu
	orders   *fakeOrderUsecase
}

func newCartServiceFixture() *cartServiceFixture {
	fixture := &cartServiceFixture{
		sessions: newFakeSessionRepo(),
		menu:     testMenu(),
		orders:   &fakeOrderUsecase{},
	}
	fixture.service = NewCartService(CartServiceParams{
		Sessions: fixture.sessions,
		MenuRepo: &fakeMenuRepo{menu: fixture.menu},
		Orders:   fixture.orders,
		Logger:   testLogger(),
	})

	return fixture
}

func TestCartService_AddItem(t *testing.T) {
	fixture := newCartServiceFixture()
	sessionID := uuid.New()

	view, err := fixture.service.AddItem(context.Background(), sessionID, &usecase.AddCartItemInput{
		MenuItemID:          fixture.menu[0].ID,
		Quantity:            2,
		SpecialInstructions: "no onions",
	})

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Hamburger", view.Lines[0].Name)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.InDelta(t, 6.90, view.Total, 0.0001)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, "2x Hamburger (no onions): $6.90\n\nTotal: $6.90", view.Summary)
}

func TestCartService_AddItem_UnknownMenuItem(t *testing.T) {
	fixture := newCartServiceFixture()

	_, err := fixture.service.AddItem(context.Background(), uuid.New(), &usecase.AddCartItemInput{
		MenuItemID: uuid.New(),
		Quantity:   1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrMenuItemNotFound)
}

func TestCartService_AddItem_MergesMatchingLines(t *testing.T) {
	fixture := newCartServiceFixture()
	sessionID := uuid.New()
	ctx := context.Background()

	input := &usecase.AddCartItemInput{MenuItemID: fixture.menu[2].ID, Quantity: 1}
	_, err := fixture.service.AddItem(ctx, sessionID, input)
	require.NoError(t, err)

	view, err := fixture.service.AddItem(ctx, sessionID, input)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestCartService_UpdateLine(t *testing.T) {
	fixture := newCartServiceFixture()
	sessionID := uuid.New()
	ctx := context.Background()

	view, err := fixture.service.AddItem(ctx, sessionID, &usecase.AddCartItemInput{MenuItemID: fixture.menu[0].ID, Quantity: 1})
	require.NoError(t, err)
	lineID := view.Lines[0].ID

	view, err = fixture.service.UpdateLine(ctx, sessionID, lineID, &usecase.UpdateCartLineInput{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	// Quantity zero removes the line.
	view, err = fixture.service.UpdateLine(ctx, sessionID, lineID, &usecase.UpdateCartLineInput{Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_UpdateLine_NotFound(t *testing.T) {
	fixture := newCartServiceFixture()

	_, err := fixture.service.UpdateLine(context.Background(), uuid.New(), uuid.New(), &usecase.UpdateCartLineInput{Quantity: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCartLineNotFound)
}

func TestCartService_RemoveLineAndClear(t *testing.T) {
	fixture := newCartServiceFixture()
	sessionID := uuid.New()
	ctx := context.Background()

	view, err := fixture.service.AddItem(ctx, sessionID, &usecase.AddCartItemInput{MenuItemID: fixture.menu[0].ID, Quantity: 1})
	require.NoError(t, err)
	_, err = fixture.service.AddItem(ctx, sessionID, &usecase.AddCartItemInput{MenuItemID: fixture.menu[2].ID, Quantity: 1})
	require.NoError(t, err)

	after, err := fixture.service.RemoveLine(ctx, sessionID, view.Lines[0].ID)
	require.NoError(t, err)
	require.Len(t, after.Lines, 1)
	assert.Equal(t, "Fries", after.Lines[0].Name)

	cleared, err := fixture.service.ClearCart(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Lines)
	assert.Equal(t, "Your cart is empty.", cleared.Summary)
}

func TestCartService_Checkout_PlacesOrderAndClearsCart(t *testing.T) {
	fixture := newCartServiceFixture()
	sessionID := uuid.New()
	userID := uuid.New()
	ctx := context.Background()

	_, err := fixture.service.AddItem(ctx, sessionID, &usecase.AddCartItemInput{MenuItemID: fixture.menu[0].ID, Quantity: 2, SpecialInstructions: "no onions"})
	require.NoError(t, err)

	order, err := fixture.service.Checkout(ctx, sessionID, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, order.UserID)
	require.Len(t, fixture.orders.placed, 1)
	assert.InDelta(t, 6.90, fixture.orders.placed[0].Subtotal, 0.0001)
	require.Len(t, fixture.orders.placed[0].Lines, 1)
	assert.Equal(t, 3.45, fixture.orders.placed[0].Lines[0].UnitPrice)

	view, err := fixture.service.GetCart(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	fixture := newCartServiceFixture()

	_, err := fixture.service.Checkout(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
	assert.Empty(t, fixture.orders.placed)
}

func TestCartService_Checkout_FailureKeepsCart(t *testing.T) {
	fixture := newCartServiceFixture()
	fixture.orders.err = errors.New("db down")
	sessionID := uuid.New()
	ctx := context.Background()

	_, err := fixture.service.AddItem(ctx, sessionID, &usecase.AddCartItemInput{MenuItemID: fixture.menu[0].ID, Quantity: 1})
	require.NoError(t, err)

	_, err = fixture.service.Checkout(ctx, sessionID, uuid.New())
	require.Error(t, err)

	view, err := fixture.service.GetCart(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
}
