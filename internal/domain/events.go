package domain

import "time"

// OrderStatusChangedEvent is published on order.status_changed whenever an
// order is created or its status is mutated. OldStatus is empty on creation.
type OrderStatusChangedEvent struct {
	EventID       string      `json:"event_id"`
	OrderID       string      `json:"order_id"`
	CustomerID    string      `json:"customer_id"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	OldStatus     OrderStatus `json:"old_status,omitempty"`
	NewStatus     OrderStatus `json:"new_status"`
	Timestamp     time.Time   `json:"timestamp"`
}
