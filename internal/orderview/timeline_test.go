package orderview

import (
	"reflect"
	"testing"
	"time"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func stages(events []domain.TimelineEvent) []domain.OrderStatus {
	out := make([]domain.OrderStatus, len(events))
	for i, e := range events {
		out[i] = e.Status
	}
	return out
}

func assertNonDecreasing(t *testing.T, events []domain.TimelineEvent) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		prev, cur := events[i-1].Timestamp, events[i].Timestamp
		if prev == nil || cur == nil {
			continue
		}
		if cur.Before(*prev) {
			t.Errorf("event %d (%s) at %v precedes %v", i, events[i].Stage, cur, prev)
		}
	}
}

func TestPolicy_Timeline(t *testing.T) {
	p := DefaultPolicy()

	t.Run("shipped yields placed, processing, shipped in increasing order", func(t *testing.T) {
		for _, raw := range []string{"shipped", "Shipped", "SHIPPED"} {
			status, _ := domain.ParseStatus(raw)
			events := p.Timeline(TimelineInput{Status: status, OrderDate: day(1)})

			want := []domain.OrderStatus{domain.OrderStatusPlaced, domain.OrderStatusProcessing, domain.OrderStatusShipped}
			if got := stages(events); !reflect.DeepEqual(got, want) {
				t.Fatalf("%s: expected %v, got %v", raw, want, got)
			}
			for i := 1; i < len(events); i++ {
				if !events[i].Timestamp.After(*events[i-1].Timestamp) {
					t.Errorf("%s: expected strictly increasing timestamps", raw)
				}
			}
			if !events[2].Timestamp.Equal(day(4)) {
				t.Errorf("expected shipped at %v, got %v", day(4), events[2].Timestamp)
			}
		}
	})

	t.Run("delivered uses the actual delivery date", func(t *testing.T) {
		events := p.Timeline(TimelineInput{Status: domain.OrderStatusDelivered, OrderDate: day(1), DeliveryDate: day(9)})
		if len(events) != 4 {
			t.Fatalf("expected 4 events, got %d", len(events))
		}
		if !events[3].Timestamp.Equal(day(9)) {
			t.Errorf("expected delivered at %v, got %v", day(9), events[3].Timestamp)
		}
		assertNonDecreasing(t, events)
	})

	t.Run("delivered without a date falls back to the estimate", func(t *testing.T) {
		events := p.Timeline(TimelineInput{Status: domain.OrderStatusDelivered, OrderDate: day(1)})
		if !events[3].Timestamp.Equal(day(11)) {
			t.Errorf("expected delivered at %v, got %v", day(11), events[3].Timestamp)
		}
	})

	t.Run("early delivery date is clamped to the shipped time", func(t *testing.T) {
		events := p.Timeline(TimelineInput{Status: domain.OrderStatusDelivered, OrderDate: day(1), DeliveryDate: day(2)})
		if !events[3].Timestamp.Equal(day(4)) {
			t.Errorf("expected delivered clamped to %v, got %v", day(4), events[3].Timestamp)
		}
		assertNonDecreasing(t, events)
	})

	t.Run("cancelled yields placed then cancelled", func(t *testing.T) {
		events := p.Timeline(TimelineInput{Status: domain.OrderStatusCancelled, OrderDate: day(1), CancelledAt: day(3)})
		want := []domain.OrderStatus{domain.OrderStatusPlaced, domain.OrderStatusCancelled}
		if got := stages(events); !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		if !events[1].Timestamp.Equal(day(3)) {
			t.Errorf("expected cancelled at %v, got %v", day(3), events[1].Timestamp)
		}
	})

	t.Run("cancelled without a date sits at the order date", func(t *testing.T) {
		events := p.Timeline(TimelineInput{Status: domain.OrderStatusCancelled, OrderDate: day(5)})
		if !events[1].Timestamp.Equal(day(5)) {
			t.Errorf("expected cancelled at %v, got %v", day(5), events[1].Timestamp)
		}
	})

	t.Run("unknown status only emits placed", func(t *testing.T) {
		status, ok := domain.ParseStatus("on hold")
		if ok {
			t.Fatal("expected unknown status")
		}
		events := p.Timeline(TimelineInput{Status: status, OrderDate: day(1)})
		if len(events) != 1 || events[0].Stage != "Order Placed" {
			t.Errorf("expected only Order Placed, got %v", stages(events))
		}
	})

	t.Run("missing order date leaves synthesized timestamps empty", func(t *testing.T) {
		events := p.Timeline(TimelineInput{Status: domain.OrderStatusShipped})
		for _, e := range events {
			if e.Timestamp != nil {
				t.Errorf("expected nil timestamp for %s, got %v", e.Stage, e.Timestamp)
			}
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		in := TimelineInput{Status: domain.OrderStatusDelivered, OrderDate: day(1), DeliveryDate: day(9)}
		if !reflect.DeepEqual(p.Timeline(in), p.Timeline(in)) {
			t.Error("expected identical output for identical input")
		}
	})
}

func TestPolicy_DeliveryDisplay(t *testing.T) {
	p := DefaultPolicy()

	if _, ok := p.EstimateDelivery(time.Time{}); ok {
		t.Error("expected no estimate without an order date")
	}

	got, ok := p.DeliveryDisplay(domain.OrderStatusShipped, day(1), day(9))
	if !ok || !got.Equal(day(11)) {
		t.Errorf("expected estimate %v for in-flight order, got %v", day(11), got)
	}

	got, ok = p.DeliveryDisplay(domain.OrderStatusDelivered, day(1), day(9))
	if !ok || !got.Equal(day(9)) {
		t.Errorf("expected actual date %v for delivered order, got %v", day(9), got)
	}

	got, ok = p.DeliveryDisplay(domain.OrderStatusDelivered, day(1), day(2))
	if !ok || !got.Equal(day(4)) {
		t.Errorf("expected early delivery clamped to %v, got %v", day(4), got)
	}

	if _, ok := p.DeliveryDisplay(domain.OrderStatusCancelled, day(1), time.Time{}); ok {
		t.Error("expected no delivery date for cancelled order")
	}

	custom := Policy{ProcessingDays: 1, ShippingDays: 2, DeliveryDays: 5}
	if est, _ := custom.EstimateDelivery(day(1)); !est.Equal(day(6)) {
		t.Errorf("expected configurable window, got %v", est)
	}
}
