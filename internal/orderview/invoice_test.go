package orderview

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRenderInvoice(t *testing.T) {
	view := assemble(t, `{
		"order_id": "ORD-9",
		"order_date": "2024-01-01",
		"status": "Delivered",
		"delivery_date": "2024-01-09",
		"total_amount": "12350.50",
		"discount": 100,
		"payment_method": "Card",
		"orderDetails": [
			{"product_id": "P-1", "quantity": 2, "price_at_purchase": "5000.25", "product_name": "Brass Lamp <large>", "product_image": "x"},
			{"product_id": "P-2", "quantity": 1, "price_at_purchase": 2000, "product_name": "Mat", "product_image": "y", "customization": "Initials: KP"}
		],
		"customerInfo": {"addresses": [{"full_name": "K. Perera", "street_address": "7 Temple Rd", "city": "Kandy"}]}
	}`)

	doc, err := RenderInvoice(view)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(doc)

	t.Run("reproduces the view-model figures", func(t *testing.T) {
		for id, amount := range map[string]decimal.Decimal{
			"subtotal": view.Subtotal,
			"shipping": view.Shipping,
			"discount": view.Discount,
			"total":    view.Total,
		} {
			cell := `id="` + id + `">` + FormatMoney(amount) + `<`
			if !strings.Contains(html, cell) {
				t.Errorf("expected %s cell %q in invoice", id, cell)
			}
		}
		if FormatMoney(view.Subtotal) != "Rs. 12,000.50" {
			t.Errorf("unexpected subtotal %s", FormatMoney(view.Subtotal))
		}
		if FormatMoney(view.Shipping) != "Rs. 350.00" {
			t.Errorf("unexpected shipping %s", FormatMoney(view.Shipping))
		}
	})

	t.Run("lists line items with escaped names", func(t *testing.T) {
		if !strings.Contains(html, "Brass Lamp &lt;large&gt;") {
			t.Error("expected escaped item name")
		}
		if !strings.Contains(html, "Initials: KP") {
			t.Error("expected customization text")
		}
		if !strings.Contains(html, "Rs. 10,000.50") {
			t.Error("expected line total for first item")
		}
	})

	t.Run("includes addresses and footer", func(t *testing.T) {
		if strings.Count(html, "7 Temple Rd") != 2 {
			t.Error("expected shipping and billing address")
		}
		if !strings.Contains(html, "Thank you for supporting Handix artisans.") {
			t.Error("expected static footer")
		}
		if !strings.Contains(html, "Jan 1, 2024") {
			t.Error("expected formatted order date")
		}
	})
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "Rs. 0.00",
		"999.999":   "Rs. 1,000.00",
		"1234567.8": "Rs. 1,234,567.80",
		"-42":       "-Rs. 42.00",
	}
	for in, want := range tests {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Errorf("%s: expected %q, got %q", in, want, got)
		}
	}
}
