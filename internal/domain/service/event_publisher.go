package service

import (
	"context"
	"time"
)

// OrderPlacedEvent is published for every confirmed order so kitchen-side
// consumers can start preparation.
type OrderPlacedEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes an order-placed event for async processing.
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
