package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Monetary columns store dollars with
// two fractional digits; line prices are frozen copies, not menu references.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Subtotal  float64   `gorm:"type:numeric(10,2);not null"`
	Total     float64   `gorm:"type:numeric(10,2);not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table. Name and UnitPrice are
// copied from the menu item at placement time so later menu edits never
// change what the customer was charged.
type OrderLineModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID             uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID          uuid.UUID `gorm:"type:uuid;not null"`
	Name                string    `gorm:"type:varchar(100);not null"`
	UnitPrice           float64   `gorm:"type:numeric(10,2);not null"`
	Quantity            int       `gorm:"not null"`
	SpecialInstructions string    `gorm:"type:varchar(500)"`
	CreatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
