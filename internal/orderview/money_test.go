package orderview

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

func TestSubtotal(t *testing.T) {
	t.Run("empty list is zero", func(t *testing.T) {
		if got := Subtotal(nil); !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("sums quantity times unit price", func(t *testing.T) {
		items := []domain.LineItem{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(500)},
			{Quantity: 1, UnitPrice: decimal.NewFromInt(1000)},
			{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
		}
		want := decimal.RequireFromString("2059.97")
		if got := Subtotal(items); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("uses defaults for missing price and quantity", func(t *testing.T) {
		var raw []domain.RawLineItem
		raw = append(raw,
			domain.RawLineItem{Price: domain.AmountOf(decimal.NewFromInt(250))},
			domain.RawLineItem{Quantity: domain.Int(4)},
		)
		items := []domain.LineItem{NormalizeLineItem(raw[0]), NormalizeLineItem(raw[1])}

		if items[0].Quantity != 1 {
			t.Errorf("expected default quantity 1, got %d", items[0].Quantity)
		}
		if !items[1].UnitPrice.IsZero() {
			t.Errorf("expected default price 0, got %s", items[1].UnitPrice)
		}
		if got := Subtotal(items); !got.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected 250, got %s", got)
		}
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		items := []domain.LineItem{{Quantity: 0, UnitPrice: decimal.NewFromInt(10)}}
		first := Subtotal(items)
		second := Subtotal(items)
		if !first.Equal(second) {
			t.Errorf("expected idempotent result, got %s and %s", first, second)
		}
		if items[0].Quantity != 0 {
			t.Errorf("expected input quantity untouched, got %d", items[0].Quantity)
		}
	})
}

func TestShippingFee(t *testing.T) {
	tests := []struct {
		name            string
		total, subtotal string
		want            string
	}{
		{"difference when total exceeds subtotal", "2350", "2000", "350"},
		{"zero when equal", "2000", "2000", "0"},
		{"clamped when total is below subtotal", "1800", "2000", "0"},
		{"zero total", "0", "150.50", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingFee(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.subtotal))
			if got.IsNegative() {
				t.Fatalf("expected non-negative fee, got %s", got)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
