// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"diner/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMenuItemNotFound is a domain-specific error returned when a menu item is not found.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRepository provides read access to the menu catalog. The catalog is
// managed out of band; this service only consumes it.
type MenuRepository interface {
	// ListAvailable returns every currently orderable menu item.
	ListAvailable(ctx context.Context) (entity.Menu, error)

	// FindByID retrieves a single menu item by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// FindByName retrieves a single menu item by exact, case-insensitive name.
	FindByName(ctx context.Context, name string) (*entity.MenuItem, error)
}
