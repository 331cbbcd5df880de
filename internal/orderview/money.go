package orderview

import (
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

// Subtotal folds line items into Σ(quantity × unit price at purchase).
func Subtotal(items []domain.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineTotal(item.Quantity, item.UnitPrice))
	}
	return subtotal
}

// ShippingFee is whatever the order total carries beyond the subtotal,
// never negative.
func ShippingFee(total, subtotal decimal.Decimal) decimal.Decimal {
	fee := total.Sub(subtotal)
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

func lineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(normalizeQuantity(quantity))))
}

func normalizeQuantity(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
