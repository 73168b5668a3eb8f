package handler

import (
	"log/slog"
	"net/http"

	"diner/internal/delivery/http/response"
	"diner/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MenuHandler serves the menu catalog.
type MenuHandler struct {
	uc     usecase.MenuUsecase
	logger *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler, injected by Fx.
func NewMenuHandler(uc usecase.MenuUsecase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListMenu returns all currently orderable items.
func (h *MenuHandler) ListMenu(c echo.Context) error {
	menu, err := h.uc.ListMenu(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, menu, "Menu retrieved successfully")
}

// GetItem returns a single menu item.
func (h *MenuHandler) GetItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid menu item ID")
	}

	item, err := h.uc.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item retrieved successfully")
}
