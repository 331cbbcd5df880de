package orderview

import (
	"time"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

// TimelineInput is everything the timeline depends on. Zero times are
// unknown.
type TimelineInput struct {
	Status       domain.OrderStatus
	OrderDate    time.Time
	DeliveryDate time.Time
	CancelledAt  time.Time
}

var stageDescriptions = map[domain.OrderStatus]string{
	domain.OrderStatusPlaced:     "Your order has been placed.",
	domain.OrderStatusProcessing: "The artisan is preparing your order.",
	domain.OrderStatusShipped:    "Your order is on its way.",
	domain.OrderStatusDelivered:  "Your order has been delivered.",
	domain.OrderStatusCancelled:  "Your order was cancelled.",
}

// Timeline synthesizes the lifecycle events an order has passed through.
// The stages present are always a prefix of Placed, Processing, Shipped,
// Delivered; a cancelled order gets Placed followed by Cancelled.
// Timestamps never decrease along the sequence.
func (p Policy) Timeline(in TimelineInput) []domain.TimelineEvent {
	events := []domain.TimelineEvent{
		newEvent(domain.OrderStatusPlaced, in.OrderDate),
	}

	if in.Status == domain.OrderStatusCancelled {
		at := in.CancelledAt
		if at.IsZero() || at.Before(in.OrderDate) {
			at = in.OrderDate
		}
		return append(events, newEvent(domain.OrderStatusCancelled, at))
	}

	if in.Status.Reached(domain.OrderStatusProcessing) {
		events = append(events, newEvent(domain.OrderStatusProcessing, p.offset(in.OrderDate, p.ProcessingDays)))
	}

	if in.Status.Reached(domain.OrderStatusShipped) {
		events = append(events, newEvent(domain.OrderStatusShipped, p.offset(in.OrderDate, p.ShippingDays)))
	}

	if in.Status == domain.OrderStatusDelivered {
		events = append(events, newEvent(domain.OrderStatusDelivered, p.deliveredAt(in.OrderDate, in.DeliveryDate)))
	}

	return events
}

func (p Policy) offset(orderDate time.Time, days int) time.Time {
	if orderDate.IsZero() {
		return time.Time{}
	}
	return orderDate.AddDate(0, 0, days)
}

func newEvent(status domain.OrderStatus, at time.Time) domain.TimelineEvent {
	return domain.TimelineEvent{
		Stage:       status.Label(),
		Status:      status,
		Timestamp:   timePtr(at),
		Description: stageDescriptions[status],
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
