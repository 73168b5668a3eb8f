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

type orderServiceFixture struct {
	service   usecase.OrderUsecase
	orderRepo *fakeOrderRepo
	publisher *fakePublisher
	qr        *fakeQRService
}

func newOrderServiceFixture() *orderServiceFixture {
	fixture := &orderServiceFixture{
		orderRepo: newFakeOrderRepo(),
		publisher: &fakePublisher{},
		qr:        &fakeQRService{png: []byte("png-bytes")},
	}
	fixture.service = NewOrderService(OrderServiceParams{
		TxManager: &fakeTxManager{factory: &fakeRepoFactory{userRepo: newFakeUserRepo(), refreshRepo: newFakeRefreshTokenRepo(), orderRepo: fixture.orderRepo}},
		OrderRepo: fixture.orderRepo,
		Publisher: fixture.publisher,
		QRService: fixture.qr,
		Logger:    testLogger(),
	})

	return fixture
}

func burgerLines() []entity.OrderLine {
	return []entity.OrderLine{
		{MenuItemID: uuid.New(), Name: "Hamburger", UnitPrice: 3.45, Quantity: 2, SpecialInstructions: "no onions"},
	}
}

func TestOrderService_PlaceOrder_AppliesTaxAndRounds(t *testing.T) {
	fixture := newOrderServiceFixture()
	userID := uuid.New()

	order, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   userID,
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.InDelta(t, 6.90, order.Subtotal, 0.0001)
	// 6.90 * 1.0825 = 7.46925, rounded to cents.
	assert.InDelta(t, 7.47, order.Total, 0.0001)

	stored, err := fixture.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
}

func TestOrderService_PlaceOrder_PublishesEvent(t *testing.T) {
	fixture := newOrderServiceFixture()
	userID := uuid.New()

	order, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   userID,
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})
	require.NoError(t, err)

	require.Len(t, fixture.publisher.events, 1)
	event := fixture.publisher.events[0]
	assert.Equal(t, order.ID.String(), event.OrderID)
	assert.Equal(t, userID.String(), event.UserID)
	assert.Equal(t, 2, event.ItemCount)
	assert.InDelta(t, order.Total, event.Total, 0.0001)
}

func TestOrderService_PlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	fixture := newOrderServiceFixture()
	fixture.publisher.err = errors.New("broker down")

	order, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   uuid.New(),
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})

	require.NoError(t, err)
	_, err = fixture.orderRepo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
}

func TestOrderService_PlaceOrder_RequiresUser(t *testing.T) {
	fixture := newOrderServiceFixture()

	_, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   uuid.Nil,
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrSignInRequired)
}

func TestOrderService_PlaceOrder_RejectsEmptyOrder(t *testing.T) {
	fixture := newOrderServiceFixture()

	_, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID: uuid.New(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestOrderService_PlaceOrder_CreateFailure(t *testing.T) {
	fixture := newOrderServiceFixture()
	fixture.orderRepo.createErr = errors.New("db down")

	_, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   uuid.New(),
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderCreationFailed)
	assert.Empty(t, fixture.publisher.events)
}

func TestOrderService_GetOrder_MasksOtherUsersOrders(t *testing.T) {
	fixture := newOrderServiceFixture()
	owner := uuid.New()

	order, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   owner,
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})
	require.NoError(t, err)

	_, err = fixture.service.GetOrder(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	got, err := fixture.service.GetOrder(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrderService_PickupQR(t *testing.T) {
	fixture := newOrderServiceFixture()
	owner := uuid.New()

	order, err := fixture.service.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		UserID:   owner,
		Lines:    burgerLines(),
		Subtotal: 6.90,
	})
	require.NoError(t, err)

	png, err := fixture.service.PickupQR(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)

	_, err = fixture.service.PickupQR(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
