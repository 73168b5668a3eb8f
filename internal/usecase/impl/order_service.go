package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "diner/internal/delivery/context"
	"diner/internal/domain/entity"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/domain/repository"
	"diner/internal/domain/service"
	"diner/internal/usecase"
	"diner/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	qrService service.QRCodeService
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher
	QRService service.QRCodeService
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		publisher: params.Publisher,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder persists an order built from a price-frozen cart snapshot.
// Totals are computed here so the checkout endpoint and the assistant's
// order command can never disagree on the math.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrSignInRequired, "order placement requires an account")
	}
	if len(input.Lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "cannot place an empty order")
	}

	subtotal := util.RoundToCents(input.Subtotal)
	order := &entity.Order{
		UserID:   input.UserID,
		Lines:    input.Lines,
		Subtotal: subtotal,
		Total:    util.RoundToCents(subtotal * (1 + entity.TaxRate)),
		Status:   entity.StatusPending,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.OrderRepo().Create(ctx, order); createErr != nil {
			return errors.Wrap(createErr, "failed to create order")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute order placement transaction", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOrderCreationFailed, err.Error())
	}

	srv.publishOrderPlaced(ctx, order)

	srv.log(ctx).Info("Order placed",
		slog.Any("orderID", order.ID),
		slog.Any("userID", order.UserID),
		slog.Float64("total", order.Total),
	)

	return order, nil
}

// publishOrderPlaced notifies kitchen-side consumers. Publishing is best
// effort: the order is already committed, so a broker outage must not turn a
// successful checkout into an error.
func (srv *orderService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	itemCount := 0
	for _, line := range order.Lines {
		itemCount += line.Quantity
	}

	event := &service.OrderPlacedEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		Total:     order.Total,
		ItemCount: itemCount,
		PlacedAt:  time.Now(),
	}

	if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order placed event", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

// ListOrders returns the user's order history, most recent first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list orders", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one of the user's orders. Orders belonging to other users
// are reported as not found rather than forbidden.
func (srv *orderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}
	if order.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
	}

	return order, nil
}

// PickupQR renders the PNG pickup code for one of the user's orders.
func (srv *orderService) PickupQR(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GeneratePickupQR(order.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate pickup QR", slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate pickup QR")
	}

	return png, nil
}
