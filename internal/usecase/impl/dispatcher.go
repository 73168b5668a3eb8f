// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	"diner/internal/domain/command"
	"diner/internal/domain/entity"
	"diner/internal/usecase"
	"diner/internal/util"

	"github.com/google/uuid"
)

// turnDispatcher applies parsed commands to one session's cart and order
// state. It lives for exactly one assistant turn: the applied set guarantees
// at-most-once execution per logical action even when the model re-emits a
// command or the same batch is extracted twice.
type turnDispatcher struct {
	menu    entity.Menu
	orders  usecase.OrderUsecase
	applied map[string]struct{}
	logger  *slog.Logger
}

// dispatchOutcome carries the user-visible side effects of one batch:
// transient notices and assistant messages to append once the turn settles.
type dispatchOutcome struct {
	Notices  []string
	Messages []entity.Message
}

func newTurnDispatcher(menu entity.Menu, orders usecase.OrderUsecase, logger *slog.Logger) *turnDispatcher {
	return &turnDispatcher{
		menu:    menu,
		orders:  orders,
		applied: make(map[string]struct{}),
		logger:  logger,
	}
}

// Apply executes a batch of newly extracted commands against the session.
// CLEAR_CART is hoisted to the front of its batch; everything else runs in
// original text order. The caller must hold the session's lock.
func (d *turnDispatcher) Apply(ctx context.Context, sess *entity.Session, batch []command.Command) dispatchOutcome {
	var out dispatchOutcome

	ordered := make([]command.Command, 0, len(batch))
	for _, cmd := range batch {
		if cmd.Kind == command.KindClearCart {
			ordered = append(ordered, cmd)
		}
	}
	for _, cmd := range batch {
		if cmd.Kind != command.KindClearCart {
			ordered = append(ordered, cmd)
		}
	}

	for _, cmd := range ordered {
		key := cmd.Key()
		if _, done := d.applied[key]; done {
			continue
		}
		d.applied[key] = struct{}{}
		d.apply(ctx, sess, cmd, &out)
	}

	return out
}

func (d *turnDispatcher) apply(ctx context.Context, sess *entity.Session, cmd command.Command, out *dispatchOutcome) {
	switch cmd.Kind {
	case command.KindClearCart:
		sess.Cart.Clear()
		d.logger.Debug("Cart cleared by assistant", slog.String("session_id", sess.ID.String()))

	case command.KindAddToCart:
		item := d.menu.FindByName(cmd.ItemName)
		if item == nil {
			out.Notices = append(out.Notices, fmt.Sprintf("Item not found: %s", cmd.ItemName))

			return
		}
		line := sess.Cart.Add(item, cmd.Quantity, cmd.SpecialInstructions)
		out.Notices = append(out.Notices, fmt.Sprintf("Added %s to your cart", item.Name))
		d.logger.Debug("Assistant added item to cart",
			slog.String("session_id", sess.ID.String()),
			slog.String("item", item.Name),
			slog.Int("quantity", line.Quantity),
		)

	case command.KindRemoveFromCart:
		// Resolved against the cart's own lines, not the catalog; a miss is
		// a silent no-op.
		if sess.Cart.RemoveByName(cmd.ItemName, cmd.Quantity) {
			out.Notices = append(out.Notices, fmt.Sprintf("Removed %s from your cart", cmd.ItemName))
		}

	case command.KindShowCart:
		out.Messages = append(out.Messages, entity.Message{
			Role:    entity.RoleAssistant,
			Content: sess.Cart.Summary(),
		})

	case command.KindPlaceOrder:
		d.placeOrder(ctx, sess, out)
	}
}

func (d *turnDispatcher) placeOrder(ctx context.Context, sess *entity.Session, out *dispatchOutcome) {
	if sess.UserID == uuid.Nil {
		out.Notices = append(out.Notices, "Please sign in to place an order")

		return
	}
	if sess.Cart.IsEmpty() {
		out.Notices = append(out.Notices, "Your cart is empty, add something before ordering")

		return
	}

	order, err := d.orders.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		UserID:   sess.UserID,
		Lines:    entity.SnapshotCart(sess.Cart),
		Subtotal: sess.Cart.Total(),
	})
	if err != nil {
		// The cart is deliberately left intact so the customer does not
		// lose their pending items.
		d.logger.Error("Order creation failed",
			slog.String("session_id", sess.ID.String()),
			slog.Any("error", err),
		)
		out.Notices = append(out.Notices, "We couldn't place your order, please try again")

		return
	}

	sess.Cart.Clear()
	out.Messages = append(out.Messages, entity.Message{
		Role: entity.RoleAssistant,
		Content: fmt.Sprintf("Your order has been placed! Order ID: %s. Total with tax: %s. Show your pickup code at the counter.",
			order.ID, util.FormatMoney(order.Total)),
	})
}
