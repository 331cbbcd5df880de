package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotAvailable is the display value of any address field that could not be
// resolved.
const NotAvailable = "N/A"

type Address struct {
	Name     string `json:"name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	District string `json:"district"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

func UnresolvedAddress() Address {
	return Address{
		Name:     NotAvailable,
		Street:   NotAvailable,
		City:     NotAvailable,
		District: NotAvailable,
		Country:  NotAvailable,
		Phone:    NotAvailable,
	}
}

// LineItem carries the unit price at the time of purchase, never the
// product's current price.
type LineItem struct {
	ProductID     string          `json:"productId"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	Customization string          `json:"customization,omitempty"`
	Name          string          `json:"name"`
	Image         string          `json:"image"`
	Artisan       string          `json:"artisan,omitempty"`
}

type TimelineEvent struct {
	Stage       string      `json:"stage"`
	Status      OrderStatus `json:"status"`
	Timestamp   *time.Time  `json:"timestamp"`
	Description string      `json:"description"`
}

// OrderView is the normalized order record consumed by every presentation
// surface: purchase history, order details and the invoice.
type OrderView struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customerId,omitempty"`
	Date              *time.Time      `json:"date"`
	Status            OrderStatus     `json:"status"`
	Total             decimal.Decimal `json:"total"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Shipping          decimal.Decimal `json:"shipping"`
	Discount          decimal.Decimal `json:"discount"`
	Items             []LineItem      `json:"items"`
	Timeline          []TimelineEvent `json:"timeline"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery"`
	DeliveredDate     *time.Time      `json:"deliveredDate"`
	ShippingAddress   Address         `json:"shippingAddress"`
	BillingAddress    Address         `json:"billingAddress"`
	PaymentMethod     string          `json:"paymentMethod"`
}

// LatestEvent returns the last timeline entry, if any.
func (v OrderView) LatestEvent() (TimelineEvent, bool) {
	if len(v.Timeline) == 0 {
		return TimelineEvent{}, false
	}
	return v.Timeline[len(v.Timeline)-1], true
}
