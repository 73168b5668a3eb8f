package impl

import (
	"context"
	"log/slog"

	deliverycontext "diner/internal/delivery/context"
	"diner/internal/domain/entity"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/domain/repository"
	"diner/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. It mutates the same
// per-session cart the conversational path uses, always under the session
// store's lock, so the drawer UI and the assistant never race.
type cartService struct {
	sessions repository.SessionRepository
	menuRepo repository.MenuRepository
	orders   usecase.OrderUsecase
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Sessions repository.SessionRepository
	MenuRepo repository.MenuRepository
	Orders   usecase.OrderUsecase
	Logger   *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		sessions: params.Sessions,
		menuRepo: params.MenuRepo,
		orders:   params.Orders,
		logger:   params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the session's cart with derived totals.
func (srv *cartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*usecase.CartView, error) {
	return srv.withCart(ctx, sessionID, func(*entity.Cart) error { return nil })
}

// AddItem adds a menu item to the session's cart, merging with an existing
// line when name and special instructions match.
func (srv *cartService) AddItem(ctx context.Context, sessionID uuid.UUID, input *usecase.AddCartItemInput) (*usecase.CartView, error) {
	item, err := srv.menuRepo.FindByID(ctx, input.MenuItemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "cannot add unknown menu item")
		}

		return nil, errors.Wrap(err, "failed to load menu item for cart add")
	}

	return srv.withCart(ctx, sessionID, func(cart *entity.Cart) error {
		line := cart.Add(item, input.Quantity, input.SpecialInstructions)
		srv.log(ctx).Debug("Cart item added",
			slog.String("session_id", sessionID.String()),
			slog.String("item", item.Name),
			slog.Int("quantity", line.Quantity),
		)

		return nil
	})
}

// UpdateLine sets the quantity of one cart line; zero removes the line.
func (srv *cartService) UpdateLine(ctx context.Context, sessionID uuid.UUID, lineID uuid.UUID, input *usecase.UpdateCartLineInput) (*usecase.CartView, error) {
	return srv.withCart(ctx, sessionID, func(cart *entity.Cart) error {
		if !cart.SetQuantity(lineID, input.Quantity) {
			return errors.Wrap(domainerrors.ErrCartLineNotFound, "cart line update failed")
		}

		return nil
	})
}

// RemoveLine removes one line from the session's cart.
func (srv *cartService) RemoveLine(ctx context.Context, sessionID uuid.UUID, lineID uuid.UUID) (*usecase.CartView, error) {
	return srv.withCart(ctx, sessionID, func(cart *entity.Cart) error {
		if !cart.RemoveLine(lineID) {
			return errors.Wrap(domainerrors.ErrCartLineNotFound, "cart line removal failed")
		}

		return nil
	})
}

// ClearCart empties the session's cart.
func (srv *cartService) ClearCart(ctx context.Context, sessionID uuid.UUID) (*usecase.CartView, error) {
	return srv.withCart(ctx, sessionID, func(cart *entity.Cart) error {
		cart.Clear()

		return nil
	})
}

// Checkout places an order from the session's current cart and clears the
// cart on success. It runs under the session lock so the assistant cannot
// mutate the cart between snapshot and placement.
func (srv *cartService) Checkout(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.sessions.WithSession(ctx, sessionID, userID, func(sess *entity.Session) error {
		if sess.Cart.IsEmpty() {
			return errors.Wrap(domainerrors.ErrCartEmpty, "checkout requires a non-empty cart")
		}

		placed, placeErr := srv.orders.PlaceOrder(ctx, &usecase.PlaceOrderInput{
			UserID:   userID,
			Lines:    entity.SnapshotCart(sess.Cart),
			Subtotal: sess.Cart.Total(),
		})
		if placeErr != nil {
			return placeErr
		}

		sess.Cart.Clear()
		order = placed

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Checkout completed", slog.String("session_id", sessionID.String()), slog.Any("orderID", order.ID))

	return order, nil
}

// withCart runs fn against the session's cart under the session lock and
// snapshots the resulting view before the lock is released.
func (srv *cartService) withCart(ctx context.Context, sessionID uuid.UUID, fn func(cart *entity.Cart) error) (*usecase.CartView, error) {
	var view *usecase.CartView

	err := srv.sessions.WithSession(ctx, sessionID, uuid.Nil, func(sess *entity.Session) error {
		if err := fn(sess.Cart); err != nil {
			return err
		}
		view = buildCartView(sess.Cart)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func buildCartView(cart *entity.Cart) *usecase.CartView {
	view := &usecase.CartView{
		Lines:     make([]usecase.CartLineView, 0, len(cart.Lines)),
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		Summary:   cart.Summary(),
	}
	for _, line := range cart.Lines {
		view.Lines = append(view.Lines, usecase.CartLineView{
			ID:                  line.ID,
			MenuItemID:          line.Item.ID,
			Name:                line.Item.Name,
			UnitPrice:           line.Item.Price,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
			LinePrice:           line.LinePrice(),
		})
	}

	return view
}
