package postgres

import (
	"context"

	"diner/internal/domain/entity"
	"diner/internal/domain/repository"
	"diner/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// menuRepository implements the domain.MenuRepository interface using GORM.
// The catalog is read-only from this service's perspective.
type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository is the constructor for menuRepository.
func NewMenuRepository(db *gorm.DB) repository.MenuRepository {
	return &menuRepository{db: db}
}

// ListAvailable returns every currently orderable menu item, grouped the way
// the menu page renders them.
func (repo *menuRepository) ListAvailable(ctx context.Context) (entity.Menu, error) {
	var items []*model.MenuItemModel
	if err := repo.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category ASC, name ASC").
		Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list menu items")
	}

	menu := make(entity.Menu, 0, len(items))
	for _, item := range items {
		menu = append(menu, toMenuItemDomain(item))
	}

	return menu, nil
}

// FindByID retrieves a single menu item by its identifier.
func (repo *menuRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item by id")
	}

	return toMenuItemDomain(&itemM), nil
}

// FindByName retrieves a single menu item by exact, case-insensitive name.
func (repo *menuRepository) FindByName(ctx context.Context, name string) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel
	if err := repo.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item by name")
	}

	return toMenuItemDomain(&itemM), nil
}

// --- Mapper Functions ---

// toMenuItemDomain converts a GORM MenuItemModel to a domain MenuItem entity.
func toMenuItemDomain(data *model.MenuItemModel) *entity.MenuItem {
	if data == nil {
		return nil
	}

	return &entity.MenuItem{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		Available:   data.Available,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
