package orderview

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

const invoiceTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.ID}}</title>
<style>
body { font-family: Arial, sans-serif; color: #333; margin: 40px; }
.header { display: flex; justify-content: space-between; border-bottom: 2px solid #8b5e3c; padding-bottom: 16px; }
.brand { font-size: 28px; font-weight: bold; color: #8b5e3c; }
.addresses { display: flex; justify-content: space-between; margin: 24px 0; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
td.num, th.num { text-align: right; }
.totals { margin-top: 16px; width: 320px; margin-left: auto; }
.totals td { border: none; }
.grand td { font-weight: bold; border-top: 2px solid #333; }
.footer { margin-top: 40px; font-size: 12px; color: #777; text-align: center; }
</style>
</head>
<body>
<div class="header">
  <div class="brand">Handix</div>
  <div>
    <div><strong>Invoice</strong> #{{.ID}}</div>
    <div>Order date: {{date .Date}}</div>
    <div>Status: {{.Status.Label}}</div>
    <div>Payment: {{.PaymentMethod}}</div>
  </div>
</div>
<div class="addresses">
  <div>
    <h4>Ship to</h4>
    {{template "address" .ShippingAddress}}
  </div>
  <div>
    <h4>Bill to</h4>
    {{template "address" .BillingAddress}}
  </div>
</div>
<table>
  <thead>
    <tr><th>Item</th><th>Customization</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
  {{- range .Items}}
    <tr><td>{{.Name}}</td><td>{{if .Customization}}{{.Customization}}{{else}}-{{end}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .LineTotal}}</td></tr>
  {{- end}}
  </tbody>
</table>
<table class="totals">
  <tr><td>Subtotal</td><td class="num" id="subtotal">{{money .Subtotal}}</td></tr>
  <tr><td>Shipping</td><td class="num" id="shipping">{{money .Shipping}}</td></tr>
  <tr><td>Discount</td><td class="num" id="discount">{{money .Discount}}</td></tr>
  <tr class="grand"><td>Total</td><td class="num" id="total">{{money .Total}}</td></tr>
</table>
<div class="footer">
  <p>Thank you for supporting Handix artisans.</p>
  <p>This is a computer-generated invoice and does not require a signature.</p>
</div>
</body>
</html>
{{define "address"}}<div>{{.Name}}</div><div>{{.Street}}</div><div>{{.City}}, {{.District}}</div><div>{{.Country}}</div><div>{{.Phone}}</div>{{end}}`

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": FormatMoney,
	"date":  formatDate,
}).Parse(invoiceTemplate))

// RenderInvoice renders an assembled view-model as a standalone printable
// HTML document. Every figure comes from the view-model as is.
func RenderInvoice(v domain.OrderView) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", v.ID, err)
	}
	return buf.Bytes(), nil
}

// FormatMoney renders an amount as "Rs. 1,234.50".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "Rs. " + b.String() + "." + frac
}

func formatDate(t *time.Time) string {
	if t == nil {
		return domain.NotAvailable
	}
	return t.Format("Jan 2, 2006")
}
