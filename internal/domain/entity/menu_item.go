// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MenuItem is one orderable item from the restaurant's catalog. The catalog
// is owned by the menu service; everything else in the system treats menu
// items as read-only.
type MenuItem struct {
	ID          uuid.UUID // The unique identifier for the menu item.
	Name        string    // Display name, unique across the catalog (case-insensitive).
	Description string    // Short description shown on the menu page.
	Price       float64   // Unit price in dollars. Never negative.
	Category    string    // Menu section, e.g. "burgers", "drinks", "shakes".
	Available   bool      // Whether the item can currently be ordered.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Menu is a snapshot of the catalog, typically the currently available items.
type Menu []*MenuItem

// FindByName resolves an item by exact, case-insensitive name match.
// Returns nil when no item matches.
func (m Menu) FindByName(name string) *MenuItem {
	for _, item := range m {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}

	return nil
}
