package handler

import (
	"log/slog"
	"net/http"

	"diner/internal/delivery/http/middleware"
	"diner/internal/delivery/http/response"
	"diner/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler serves the direct cart operations used by the cart drawer UI.
// Carts live on conversation sessions, so every route carries a session ID.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetCart returns the session's current cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// AddItem adds a menu item to the session's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	var input *usecase.AddCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	cart, err := h.uc.AddItem(c.Request().Context(), sessionID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// UpdateLine changes the quantity of one cart line. Quantity zero removes
// the line.
func (h *CartHandler) UpdateLine(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart line ID")
	}

	var input *usecase.UpdateCartLineInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart line input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	cart, err := h.uc.UpdateLine(c.Request().Context(), sessionID, lineID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart line updated")
}

// RemoveLine removes one line from the session's cart.
func (h *CartHandler) RemoveLine(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid cart line ID")
	}

	cart, err := h.uc.RemoveLine(c.Request().Context(), sessionID, lineID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart line removed")
}

// ClearCart empties the session's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	cart, err := h.uc.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart cleared")
}

// Checkout places an order from the session's current cart.
func (h *CartHandler) Checkout(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	order, err := h.uc.Checkout(c.Request().Context(), sessionID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}
