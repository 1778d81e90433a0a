// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"

const (
	OrderPlacedEventType        events.EventType = "orders.OrderPlaced"
	OrderStatusChangedEventType events.EventType = "orders.OrderStatusChanged"
)

// OrderPlacedEvent is published when a cart is converted into an order.
// TotalAmount is the exact decimal total as a string (e.g., "64.95").
type OrderPlacedEvent struct {
	events.BaseEvent
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"currency"`
	LineCount   int    `json:"line_count"`
}

// OrderStatusChangedEvent is published on an administrative status update.
type OrderStatusChangedEvent struct {
	events.BaseEvent
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
