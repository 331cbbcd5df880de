package orderview

import (
	"errors"
	"log/slog"
	"time"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrMalformedOrder = errors.New("malformed order payload")
)

// Assembler composes the derived fields of an order into its view-model.
// It is the only place those fields are computed.
type Assembler struct {
	policy Policy
	logger *slog.Logger
}

func NewAssembler(policy Policy, logger *slog.Logger) *Assembler {
	return &Assembler{
		policy: policy,
		logger: logger,
	}
}

// Assemble builds the view-model from a raw order, its resolved shipping
// address and its enriched line items. It fails only when the payload has
// no order id.
func (a *Assembler) Assemble(raw domain.RawOrder, addr domain.Address, items []domain.LineItem) (domain.OrderView, error) {
	id := orderID(raw)
	if id == "" {
		return domain.OrderView{}, ErrMalformedOrder
	}

	status := a.parseStatus(id, rawStatus(raw))
	placedAt := orderDate(raw)
	deliveredAt := deliveryDate(raw)

	subtotal := Subtotal(items)
	total := orderTotal(raw)

	view := domain.OrderView{
		ID:              id,
		CustomerID:      CustomerID(raw),
		Date:            timePtr(placedAt),
		Status:          status,
		Total:           total,
		Subtotal:        subtotal,
		Shipping:        ShippingFee(total, subtotal),
		Discount:        orderDiscount(raw),
		Items:           items,
		ShippingAddress: addr,
		BillingAddress:  addr,
		PaymentMethod:   orNA(paymentMethod(raw)),
		Timeline: a.policy.Timeline(TimelineInput{
			Status:       status,
			OrderDate:    placedAt,
			DeliveryDate: deliveredAt,
			CancelledAt:  firstTime(raw.CancelledAt),
		}),
	}
	if view.Items == nil {
		view.Items = []domain.LineItem{}
	}

	if status != domain.OrderStatusCancelled {
		if est, ok := a.policy.EstimateDelivery(placedAt); ok {
			view.EstimatedDelivery = &est
		}
	}
	if status == domain.OrderStatusDelivered {
		if at, ok := a.policy.DeliveryDisplay(status, placedAt, deliveredAt); ok {
			view.DeliveredDate = timePtr(at)
		}
	}

	return view, nil
}

func (a *Assembler) parseStatus(orderID, raw string) domain.OrderStatus {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		a.logger.Warn("unrecognized order status, treating as placed", "order_id", orderID, "status", raw)
	}
	return status
}

// DeliveredOn is a convenience for presentation: the delivered date if
// known, else the estimate.
func DeliveredOn(v domain.OrderView) (time.Time, bool) {
	switch {
	case v.DeliveredDate != nil:
		return *v.DeliveredDate, true
	case v.EstimatedDelivery != nil:
		return *v.EstimatedDelivery, true
	}
	return time.Time{}, false
}
