package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the record served by the order service. Its JSON shape is the
// collaborator contract that RawOrder decodes.
type Order struct {
	ID            string          `json:"order_id"`
	CustomerID    string          `json:"customer_id"`
	OrderDate     time.Time       `json:"order_date"`
	Status        OrderStatus     `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	DeliveryDate  *time.Time      `json:"delivery_date,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Details       []OrderDetail   `json:"orderDetails"`
	CustomerInfo  *Customer       `json:"customerInfo,omitempty"`
}

type OrderDetail struct {
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Customization   string          `json:"customization,omitempty"`
}

type Customer struct {
	ID        string            `json:"customer_id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Addresses []CustomerAddress `json:"addresses"`
}

type CustomerAddress struct {
	ID            string `json:"address_id"`
	CustomerID    string `json:"customer_id"`
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	District      string `json:"district"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
}
