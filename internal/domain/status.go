package domain

import "strings"

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// lifecycle is the canonical stage ordering. Cancelled is not part of it.
var lifecycle = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

var statusAliases = map[string]OrderStatus{
	"placed":       OrderStatusPlaced,
	"order placed": OrderStatusPlaced,
	"pending":      OrderStatusPlaced,
	"new":          OrderStatusPlaced,
	"processing":   OrderStatusProcessing,
	"shipped":      OrderStatusShipped,
	"delivered":    OrderStatusDelivered,
	"cancelled":    OrderStatusCancelled,
	"canceled":     OrderStatusCancelled,
}

// ParseStatus normalizes a free-form status string. Unrecognized values
// return OrderStatusPlaced and false so callers can log before defaulting.
func ParseStatus(s string) (OrderStatus, bool) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return OrderStatusPlaced, false
	}
	return status, true
}

// Rank is the index of the status in the canonical stage ordering, or -1
// for Cancelled.
func (s OrderStatus) Rank() int {
	for i, stage := range lifecycle {
		if stage == s {
			return i
		}
	}
	return -1
}

// Reached reports whether s is at or beyond stage in the canonical ordering.
func (s OrderStatus) Reached(stage OrderStatus) bool {
	r := s.Rank()
	return r >= 0 && r >= stage.Rank()
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether an order in status s may move to next.
// Terminal states are absorbing; Cancelled is reachable from any other state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.IsTerminal() || s == next {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return next.Rank() > s.Rank()
}

func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPlaced:
		return "Order Placed"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
