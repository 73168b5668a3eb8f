package model

import (
	"time"

	"github.com/google/uuid"
)

// MenuItemModel mirrors the 'menu_items' table. The catalog is seeded and
// edited out of band; this service only reads it.
type MenuItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:varchar(500)"`
	Price       float64   `gorm:"type:numeric(10,2);not null"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Available   bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}
