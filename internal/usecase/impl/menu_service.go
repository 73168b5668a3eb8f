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

// menuService implements the MenuUsecase interface.
type menuService struct {
	menuRepo repository.MenuRepository
	logger   *slog.Logger
}

// MenuServiceParams holds dependencies for menuService, injected by Fx.
type MenuServiceParams struct {
	fx.In

	MenuRepo repository.MenuRepository
	Logger   *slog.Logger
}

// NewMenuService is the constructor for menuService.
func NewMenuService(params MenuServiceParams) usecase.MenuUsecase {
	return &menuService{
		menuRepo: params.MenuRepo,
		logger:   params.Logger,
	}
}

func (srv *menuService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMenu returns all currently orderable items.
func (srv *menuService) ListMenu(ctx context.Context) (entity.Menu, error) {
	menu, err := srv.menuRepo.ListAvailable(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list menu", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list menu")
	}

	return menu, nil
}

// GetItem returns a single menu item.
func (srv *menuService) GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := srv.menuRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load menu item")
	}

	return item, nil
}
