package orderview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

type fakeOrders struct {
	orders   map[string]domain.RawOrder
	listErr  error
	fetchErr error
}

func (f *fakeOrders) Order(_ context.Context, id string) (*domain.RawOrder, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	raw, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("get order: %w", domain.ErrNotFound)
	}
	return &raw, nil
}

func (f *fakeOrders) CustomerOrders(_ context.Context, _ string) ([]domain.RawOrder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.RawOrder
	for _, raw := range f.orders {
		out = append(out, raw)
	}
	return out, nil
}

type fakeAddresses struct {
	calls atomic.Int32
	list  []domain.RawAddress
}

func (f *fakeAddresses) CustomerAddresses(_ context.Context, _ string) ([]domain.RawAddress, error) {
	f.calls.Add(1)
	return f.list, nil
}

func newTestService(t *testing.T, orders OrderSource, addresses AddressLookup) *Service {
	t.Helper()
	enricher := newTestEnricher(t, &fakeInventory{}, &fakeProducts{})
	svc, err := NewService(orders, addresses, enricher, NewAssembler(DefaultPolicy(), discardLogger()), discardLogger())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestService_Order(t *testing.T) {
	orders := &fakeOrders{orders: map[string]domain.RawOrder{
		"ORD-1": decodeOrder(t, `{"order_id":"ORD-1","customer_id":"C-1","status":"shipped","total_amount":1200,
			"orderDetails":[{"product_id":"P-1","quantity":1,"price_at_purchase":1000}]}`),
		"ORD-2": decodeOrder(t, `{"order_id":"ORD-2","customer_id":"C-1",
			"customerInfo":{"addresses":[{"street_address":"inline st"}]}}`),
	}}

	t.Run("assembles a fetched order and consults the address service", func(t *testing.T) {
		addresses := &fakeAddresses{list: []domain.RawAddress{{City: domain.String("Negombo")}}}
		svc := newTestService(t, orders, addresses)

		view, err := svc.Order(context.Background(), "ORD-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.ShippingAddress.City != "Negombo" {
			t.Errorf("expected fallback address, got %+v", view.ShippingAddress)
		}
		if addresses.calls.Load() != 1 {
			t.Errorf("expected one address lookup, got %d", addresses.calls.Load())
		}
		if view.Items[0].Name != PlaceholderProductName {
			t.Errorf("expected placeholder name, got %q", view.Items[0].Name)
		}
	})

	t.Run("skips the address service when the payload has addresses", func(t *testing.T) {
		addresses := &fakeAddresses{}
		svc := newTestService(t, orders, addresses)

		view, err := svc.Order(context.Background(), "ORD-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if addresses.calls.Load() != 0 {
			t.Errorf("expected no address lookup, got %d", addresses.calls.Load())
		}
		if view.ShippingAddress.Street != "inline st" {
			t.Errorf("unexpected address %+v", view.ShippingAddress)
		}
	})

	t.Run("maps a missing order to ErrOrderNotFound", func(t *testing.T) {
		svc := newTestService(t, orders, nil)

		_, err := svc.Order(context.Background(), "nope")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("propagates fetch failures", func(t *testing.T) {
		boom := errors.New("connection reset")
		svc := newTestService(t, &fakeOrders{fetchErr: boom}, nil)

		_, err := svc.Order(context.Background(), "ORD-1")
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped fetch error, got %v", err)
		}
	})

	t.Run("renders the invoice of the assembled order", func(t *testing.T) {
		svc := newTestService(t, orders, nil)

		doc, view, err := svc.Invoice(context.Background(), "ORD-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(doc), FormatMoney(view.Shipping)) {
			t.Error("expected invoice to carry the view-model shipping fee")
		}
	})
}

func TestService_CustomerOrders(t *testing.T) {
	t.Run("assembles every order and skips malformed ones", func(t *testing.T) {
		orders := &fakeOrders{orders: map[string]domain.RawOrder{
			"a": decodeOrder(t, `{"order_id":"A","status":"processing"}`),
			"b": decodeOrder(t, `{"order_id":"B","status":"delivered"}`),
			"c": decodeOrder(t, `{"status":"shipped"}`),
		}}
		svc := newTestService(t, orders, nil)

		views, err := svc.CustomerOrders(context.Background(), "C-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(views) != 2 {
			t.Fatalf("expected 2 views, got %d", len(views))
		}
		for _, v := range views {
			if v.ID != "A" && v.ID != "B" {
				t.Errorf("unexpected order %s", v.ID)
			}
		}
	})

	t.Run("propagates list failures", func(t *testing.T) {
		boom := errors.New("orders service down")
		svc := newTestService(t, &fakeOrders{listErr: boom}, nil)

		if _, err := svc.CustomerOrders(context.Background(), "C-1"); !errors.Is(err, boom) {
			t.Errorf("expected wrapped list error, got %v", err)
		}
	})
}
