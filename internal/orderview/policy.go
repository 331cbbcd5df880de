package orderview

import (
	"time"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

// Policy holds the day offsets used to synthesize lifecycle timestamps.
type Policy struct {
	ProcessingDays int
	ShippingDays   int
	DeliveryDays   int
}

func DefaultPolicy() Policy {
	return Policy{
		ProcessingDays: 1,
		ShippingDays:   3,
		DeliveryDays:   10,
	}
}

// EstimateDelivery returns orderDate plus the delivery window. It reports
// false when orderDate is unknown.
func (p Policy) EstimateDelivery(orderDate time.Time) (time.Time, bool) {
	if orderDate.IsZero() {
		return time.Time{}, false
	}
	return orderDate.AddDate(0, 0, p.DeliveryDays), true
}

// DeliveryDisplay picks the date to show as the order's delivery date: the
// Delivered stage time once Delivered, the estimate otherwise. Cancelled
// orders have neither.
func (p Policy) DeliveryDisplay(status domain.OrderStatus, orderDate, deliveryDate time.Time) (time.Time, bool) {
	switch status {
	case domain.OrderStatusCancelled:
		return time.Time{}, false
	case domain.OrderStatusDelivered:
		at := p.deliveredAt(orderDate, deliveryDate)
		return at, !at.IsZero()
	}
	return p.EstimateDelivery(orderDate)
}

// deliveredAt is the time of the Delivered stage: the actual delivery date,
// else the estimate, never before the synthesized Shipped time.
func (p Policy) deliveredAt(orderDate, deliveryDate time.Time) time.Time {
	at := deliveryDate
	if at.IsZero() {
		at = p.offset(orderDate, p.DeliveryDays)
	}
	if shippedAt := p.offset(orderDate, p.ShippingDays); !shippedAt.IsZero() && at.Before(shippedAt) {
		at = shippedAt
	}
	return at
}
