package usecase

import (
	"context"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// MenuUsecase exposes the menu catalog to the delivery layer and to the
// conversational assistant, which embeds a catalog snapshot into every model
// request.
type MenuUsecase interface {
	// ListMenu returns all currently orderable items.
	ListMenu(ctx context.Context) (entity.Menu, error)

	// GetItem returns a single menu item.
	GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
}
