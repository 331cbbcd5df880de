package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRawOrder_Unmarshal(t *testing.T) {
	t.Run("decodes nested customer info and mixed scalar shapes", func(t *testing.T) {
		payload := `{
			"order_id": 42,
			"order_date": "2024-01-01 10:30:00",
			"status": "Shipped",
			"total_amount": "2350.00",
			"orderDetails": [
				{"product_id": "P-1", "quantity": "2", "price_at_purchase": 500},
				{"productId": 7, "qty": 1, "price": "abc"}
			],
			"customerInfo": {
				"first_name": "Nimal",
				"addresses": [{"street_address": "12 Temple Rd", "is_default": 1}]
			}
		}`

		var order RawOrder
		if err := json.Unmarshal([]byte(payload), &order); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if order.OrderID.Value != "42" {
			t.Errorf("expected order id 42, got %q", order.OrderID.Value)
		}
		want := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
		if !order.OrderDate.Valid || !order.OrderDate.Value.Equal(want) {
			t.Errorf("expected order date %v, got %+v", want, order.OrderDate)
		}
		if !order.TotalAmount.Value.Equal(decimal.NewFromInt(2350)) {
			t.Errorf("expected total 2350, got %s", order.TotalAmount.Value)
		}
		if len(order.OrderDetails) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(order.OrderDetails))
		}
		if order.OrderDetails[0].Quantity.Value != 2 {
			t.Errorf("expected quantity 2, got %d", order.OrderDetails[0].Quantity.Value)
		}
		if order.OrderDetails[1].ProductIDCamel.Value != "7" {
			t.Errorf("expected product id 7, got %q", order.OrderDetails[1].ProductIDCamel.Value)
		}
		if order.OrderDetails[1].Price.Valid {
			t.Error("expected non-numeric price to be invalid")
		}
		if order.CustomerInfo == nil || len(order.CustomerInfo.Addresses) != 1 {
			t.Fatal("expected one nested address")
		}
		if !order.CustomerInfo.Addresses[0].IsDefault.Value {
			t.Error("expected numeric is_default to decode as true")
		}
	})

	t.Run("promotes flat address fields", func(t *testing.T) {
		var order RawOrder
		if err := json.Unmarshal([]byte(`{"id":"o-1","city":"Kandy","phone_number":"0771234567"}`), &order); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.City.Value != "Kandy" {
			t.Errorf("expected city Kandy, got %q", order.City.Value)
		}
		if !order.HasLocation() {
			t.Error("expected flat address fields to count as a location")
		}
	})
}

func TestFlexTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{`"2024-01-09T08:00:00Z"`, true},
		{`"2024-01-09"`, true},
		{`1704067200000`, true},
		{`"next tuesday"`, false},
		{`null`, false},
		{`""`, false},
	}

	for _, tt := range tests {
		var ft FlexTime
		if err := ft.UnmarshalJSON([]byte(tt.in)); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		if ft.Valid != tt.valid {
			t.Errorf("%s: expected valid=%v, got %v", tt.in, tt.valid, ft.Valid)
		}
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		valid bool
	}{
		{`3`, 3, true},
		{`"2"`, 2, true},
		{`2.7`, 2, true},
		{`1e19`, 0, false},
		{`-1e19`, 0, false},
		{`"lots"`, 0, false},
		{`null`, 0, false},
	}

	for _, tt := range tests {
		var n FlexInt
		if err := n.UnmarshalJSON([]byte(tt.in)); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		if n.Valid != tt.valid || n.Value != tt.want {
			t.Errorf("%s: expected %d (valid=%v), got %d (valid=%v)", tt.in, tt.want, tt.valid, n.Value, n.Valid)
		}
	}
}
