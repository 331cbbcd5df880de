package orderview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeInventory struct {
	calls   atomic.Int32
	records map[string]domain.InventoryRecord
	err     error
}

func (f *fakeInventory) InventoryProduct(_ context.Context, productID string) (*domain.InventoryRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

type fakeProducts struct {
	calls   atomic.Int32
	records map[string]domain.ProductRecord
	err     error
}

func (f *fakeProducts) Product(_ context.Context, productID string) (*domain.ProductRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func newTestEnricher(t *testing.T, inv InventoryLookup, prod ProductLookup) *Enricher {
	t.Helper()
	e, err := NewEnricher(inv, prod, discardLogger(), WithPlaceholderImageBase("https://img.test/seed/"))
	if err != nil {
		t.Fatalf("failed to create enricher: %v", err)
	}
	return e
}

func TestEnricher_Enrich(t *testing.T) {
	t.Run("inline name and image skip every lookup", func(t *testing.T) {
		inv := &fakeInventory{}
		prod := &fakeProducts{}
		e := newTestEnricher(t, inv, prod)

		raw := domain.RawLineItem{
			ProductID:    domain.String("P-1"),
			ProductName:  domain.String("Clay Pot"),
			ProductImage: domain.String("https://cdn.test/pot.jpg"),
		}
		item := e.Enrich(context.Background(), NormalizeLineItem(raw))

		if inv.calls.Load() != 0 || prod.calls.Load() != 0 {
			t.Errorf("expected no lookups, got inventory=%d product=%d", inv.calls.Load(), prod.calls.Load())
		}
		if item.Name != "Clay Pot" || item.Image != "https://cdn.test/pot.jpg" {
			t.Errorf("unexpected item: %+v", item)
		}
	})

	t.Run("inventory supplies the name and product detail the image", func(t *testing.T) {
		ok := true
		inv := &fakeInventory{records: map[string]domain.InventoryRecord{
			"P-2": {Success: &ok, ProductName: domain.String("Batik Scarf")},
		}}
		prod := &fakeProducts{records: map[string]domain.ProductRecord{
			"P-2": {ImageURL: domain.String("https://cdn.test/scarf.jpg"), ProductName: domain.String("ignored")},
		}}
		e := newTestEnricher(t, inv, prod)

		item := e.Enrich(context.Background(), domain.LineItem{ProductID: "P-2", Quantity: 1})

		if item.Name != "Batik Scarf" {
			t.Errorf("expected inventory name, got %q", item.Name)
		}
		if item.Image != "https://cdn.test/scarf.jpg" {
			t.Errorf("expected product image, got %q", item.Image)
		}
		if inv.calls.Load() != 1 || prod.calls.Load() != 1 {
			t.Errorf("expected one lookup each, got inventory=%d product=%d", inv.calls.Load(), prod.calls.Load())
		}
	})

	t.Run("unsuccessful inventory answer advances to product detail", func(t *testing.T) {
		notOK := false
		inv := &fakeInventory{records: map[string]domain.InventoryRecord{
			"P-3": {Success: &notOK, ProductName: domain.String("stale")},
		}}
		prod := &fakeProducts{records: map[string]domain.ProductRecord{
			"P-3": {ProductName: domain.String("Wooden Mask"), ImageURL: domain.String("https://cdn.test/mask.jpg")},
		}}
		e := newTestEnricher(t, inv, prod)

		item := e.Enrich(context.Background(), domain.LineItem{ProductID: "P-3"})
		if item.Name != "Wooden Mask" {
			t.Errorf("expected product detail name, got %q", item.Name)
		}
	})

	t.Run("failed lookups fall through to placeholders", func(t *testing.T) {
		boom := errors.New("connection refused")
		e := newTestEnricher(t, &fakeInventory{err: boom}, &fakeProducts{err: boom})

		item := e.Enrich(context.Background(), domain.LineItem{ProductID: "P 4"})
		if item.Name != PlaceholderProductName {
			t.Errorf("expected placeholder name, got %q", item.Name)
		}
		if item.Image != "https://img.test/seed/handix-P%204/300/300" {
			t.Errorf("unexpected placeholder image %q", item.Image)
		}
		if again := e.PlaceholderImage("P 4"); again != item.Image {
			t.Errorf("expected deterministic placeholder, got %q and %q", item.Image, again)
		}
	})
}

func TestEnricher_EnrichAll(t *testing.T) {
	records := map[string]domain.InventoryRecord{}
	var items []domain.LineItem
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		records[id] = domain.InventoryRecord{ProductName: domain.String("name-" + id), ImageURL: domain.String("img-" + id)}
		items = append(items, domain.LineItem{ProductID: id})
	}
	inv := &fakeInventory{records: records}
	prod := &fakeProducts{}

	e, err := NewEnricher(inv, prod, discardLogger(), WithConcurrency(3))
	if err != nil {
		t.Fatalf("failed to create enricher: %v", err)
	}

	out := e.EnrichAll(context.Background(), items)

	if len(out) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(out))
	}
	for i, item := range out {
		if !strings.HasSuffix(item.Name, items[i].ProductID) {
			t.Errorf("item %d: expected name for %s, got %q", i, items[i].ProductID, item.Name)
		}
	}
	if items[0].Name != "" {
		t.Error("expected input items to be left untouched")
	}
	if prod.calls.Load() != 0 {
		t.Errorf("expected no product lookups, got %d", prod.calls.Load())
	}
}
