package impl

import (
	"context"
	"testing"

	"diner/internal/domain/entity"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenuService(menu entity.Menu) usecase.MenuUsecase {
	return NewMenuService(MenuServiceParams{
		MenuRepo: &fakeMenuRepo{menu: menu},
		Logger:   testLogger(),
	})
}

func TestMenuService_ListMenu(t *testing.T) {
	svc := newTestMenuService(testMenu())

	menu, err := svc.ListMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 3)
	assert.NotNil(t, menu.FindByName("Hamburger"))
}

func TestMenuService_GetItem(t *testing.T) {
	menu := testMenu()
	svc := newTestMenuService(menu)

	item, err := svc.GetItem(context.Background(), menu[0].ID)
	require.NoError(t, err)
	assert.Equal(t, menu[0].Name, item.Name)
	assert.InDelta(t, menu[0].Price, item.Price, 1e-9)
}

func TestMenuService_GetItem_NotFound(t *testing.T) {
	svc := newTestMenuService(testMenu())

	_, err := svc.GetItem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMenuItemNotFound)
}
