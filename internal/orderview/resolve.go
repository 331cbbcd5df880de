package orderview

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

// Each resolver below checks the known aliases of one field in a fixed
// priority order. Presentation code never looks at raw aliases itself.

func firstString(fields ...domain.FlexString) string {
	for _, f := range fields {
		if f.Valid {
			return f.Value
		}
	}
	return ""
}

func firstTime(fields ...domain.FlexTime) time.Time {
	for _, f := range fields {
		if f.Valid {
			return f.Value
		}
	}
	return time.Time{}
}

func firstAmount(fields ...domain.Amount) (decimal.Decimal, bool) {
	for _, f := range fields {
		if f.Valid {
			return f.Value, true
		}
	}
	return decimal.Zero, false
}

func orderID(o domain.RawOrder) string {
	return firstString(o.OrderID, o.ID, o.OrderIDCamel)
}

func orderDate(o domain.RawOrder) time.Time {
	return firstTime(o.OrderDate, o.OrderDateCamel, o.CreatedAt)
}

func rawStatus(o domain.RawOrder) string {
	return firstString(o.Status, o.OrderStatus)
}

func orderTotal(o domain.RawOrder) decimal.Decimal {
	total, _ := firstAmount(o.TotalAmount, o.TotalAmountCamel, o.Total)
	return total
}

func orderDiscount(o domain.RawOrder) decimal.Decimal {
	discount, _ := firstAmount(o.Discount, o.DiscountAmount)
	return nonNegative(discount)
}

func paymentMethod(o domain.RawOrder) string {
	return firstString(o.PaymentMethod, o.PaymentMethodCamel)
}

func deliveryDate(o domain.RawOrder) time.Time {
	return firstTime(o.DeliveryDate, o.DeliveryDateCamel, o.DeliveredAt)
}

func customer(o domain.RawOrder) *domain.RawCustomer {
	for _, c := range []*domain.RawCustomer{o.CustomerInfo, o.CustomerInfoSnake, o.Customer} {
		if c != nil {
			return c
		}
	}
	return nil
}

// CustomerID resolves the owning customer's id from the order or its
// nested customer record.
func CustomerID(o domain.RawOrder) string {
	if id := firstString(o.CustomerID, o.CustomerIDCamel); id != "" {
		return id
	}
	if c := customer(o); c != nil {
		return firstString(c.CustomerID, c.ID)
	}
	return ""
}

func rawLineItems(o domain.RawOrder) []domain.RawLineItem {
	for _, items := range [][]domain.RawLineItem{o.OrderDetails, o.OrderDetailsSnake, o.Items} {
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// NormalizeLineItem maps a raw line item onto the canonical shape. A
// missing or non-numeric price becomes 0 and a missing or non-positive
// quantity becomes 1. Name and image carry only what the payload itself
// supplies; enrichment fills the rest.
func NormalizeLineItem(raw domain.RawLineItem) domain.LineItem {
	quantity := 1
	for _, q := range []domain.FlexInt{raw.Quantity, raw.Qty} {
		if q.Valid {
			quantity = normalizeQuantity(q.Value)
			break
		}
	}
	price, _ := firstAmount(raw.PriceAtPurchase, raw.UnitPrice, raw.Price)

	item := domain.LineItem{
		ProductID:     firstString(raw.ProductID, raw.ProductIDCamel),
		Quantity:      quantity,
		UnitPrice:     price,
		LineTotal:     lineTotal(quantity, price),
		Customization: firstString(raw.Customization, raw.CustomizationText),
		Name:          firstString(raw.ProductName, raw.Name),
		Image:         firstString(raw.ProductImage, raw.ImageURL, raw.Image),
		Artisan:       firstString(raw.ArtisanName, raw.Artisan),
	}

	if p := raw.Product; p != nil {
		if item.Name == "" {
			item.Name = firstString(p.ProductName, p.Name)
		}
		if item.Image == "" {
			item.Image = firstString(p.ImageURL, p.Image)
		}
		if item.Artisan == "" {
			item.Artisan = p.ArtisanName.Value
		}
	}

	return item
}

// LineItems normalizes every line item of the order.
func LineItems(o domain.RawOrder) []domain.LineItem {
	raw := rawLineItems(o)
	items := make([]domain.LineItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, NormalizeLineItem(r))
	}
	return items
}

// ResolveAddress picks the shipping address of an order. Candidate lists are
// tried in order: addresses nested in the customer record, addresses on the
// order itself, then fallback (typically fetched from the address service).
// Within a list the default-flagged entry wins, else the first. Flat address
// fields on the order or customer are used when no list has entries. Every
// field left unresolved is "N/A".
func ResolveAddress(o domain.RawOrder, fallback []domain.RawAddress) domain.Address {
	c := customer(o)

	var selected *domain.RawAddress
	switch {
	case o.ShippingAddress != nil && o.ShippingAddress.HasLocation():
		selected = o.ShippingAddress
	case c != nil && c.ShippingAddress != nil && c.ShippingAddress.HasLocation():
		selected = c.ShippingAddress
	default:
		var lists [][]domain.RawAddress
		if c != nil {
			lists = append(lists, c.Addresses)
		}
		lists = append(lists, o.Addresses)
		for _, list := range lists {
			if a := selectAddress(list); a != nil {
				selected = a
				break
			}
		}
		if selected == nil {
			switch {
			case o.RawAddress.HasLocation():
				selected = &o.RawAddress
			case c != nil && c.RawAddress.HasLocation():
				selected = &c.RawAddress
			default:
				selected = selectAddress(fallback)
			}
		}
	}

	addr := domain.UnresolvedAddress()
	if selected != nil {
		addr = domain.Address{
			Name:     orNA(addressName(*selected)),
			Street:   orNA(firstString(selected.StreetAddress, selected.StreetCamel, selected.AddressLine1, selected.Street)),
			City:     orNA(selected.City.Value),
			District: orNA(firstString(selected.District, selected.State, selected.Province)),
			Country:  orNA(selected.Country.Value),
			Phone:    orNA(addressPhone(*selected)),
		}
	}

	if c != nil {
		if addr.Name == domain.NotAvailable {
			addr.Name = orNA(customerName(*c))
		}
		if addr.Phone == domain.NotAvailable {
			addr.Phone = orNA(addressPhone(c.RawAddress))
		}
	}

	return addr
}

func selectAddress(list []domain.RawAddress) *domain.RawAddress {
	if len(list) == 0 {
		return nil
	}
	for i := range list {
		if list[i].IsDefault.Value || list[i].IsDefaultCamel.Value {
			return &list[i]
		}
	}
	return &list[0]
}

func addressName(a domain.RawAddress) string {
	return firstString(a.FullName, a.RecipientName, a.Name)
}

func addressPhone(a domain.RawAddress) string {
	return firstString(a.Phone, a.PhoneNumber, a.ContactNumber)
}

func customerName(c domain.RawCustomer) string {
	full := strings.TrimSpace(firstString(c.FirstName, c.FirstNameCamel) + " " + firstString(c.LastName, c.LastNameCamel))
	if full != "" {
		return full
	}
	return addressName(c.RawAddress)
}

func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}
