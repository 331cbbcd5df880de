package orderview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

const (
	PlaceholderProductName = "Handix Product"

	defaultPlaceholderImageBase = "https://picsum.photos/seed"
	defaultEnrichConcurrency    = 8
)

type InventoryLookup interface {
	InventoryProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error)
}

type ProductLookup interface {
	Product(ctx context.Context, productID string) (*domain.ProductRecord, error)
}

// Enricher resolves display names and images for line items through the
// fallback chain: inline payload, inventory, product detail, placeholder.
// Lookups are best-effort; a failure only advances the chain.
type Enricher struct {
	inventory       InventoryLookup
	products        ProductLookup
	placeholderBase string
	concurrency     int
	logger          *slog.Logger
	lookups         metric.Int64Counter
}

type EnricherOption func(*Enricher)

func WithPlaceholderImageBase(base string) EnricherOption {
	return func(e *Enricher) {
		if base != "" {
			e.placeholderBase = strings.TrimRight(base, "/")
		}
	}
}

// WithConcurrency bounds the number of line items enriched at once.
func WithConcurrency(n int) EnricherOption {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func NewEnricher(inventory InventoryLookup, products ProductLookup, logger *slog.Logger, opts ...EnricherOption) (*Enricher, error) {
	lookups, err := meter.Int64Counter("orderview.enrichment.lookups",
		metric.WithDescription("Line item enrichment lookups by source and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("create enrichment counter: %w", err)
	}

	e := &Enricher{
		inventory:       inventory,
		products:        products,
		placeholderBase: defaultPlaceholderImageBase,
		concurrency:     defaultEnrichConcurrency,
		logger:          logger,
		lookups:         lookups,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// EnrichAll resolves every item concurrently and returns once all have
// resolved. The result keeps the input order; the input is not modified.
func (e *Enricher) EnrichAll(ctx context.Context, items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, item := range items {
		g.Go(func() error {
			out[i] = e.Enrich(gctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Enricher) Enrich(ctx context.Context, item domain.LineItem) domain.LineItem {
	if resolved(item) {
		return item
	}

	if item.ProductID != "" && e.inventory != nil {
		rec, err := e.inventory.InventoryProduct(ctx, item.ProductID)
		switch {
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			e.record(ctx, "inventory", "error")
			e.logger.Debug("inventory lookup failed", "error", err, "product_id", item.ProductID)
		case err != nil || rec == nil || (rec.Success != nil && !*rec.Success):
			e.record(ctx, "inventory", "miss")
		default:
			e.record(ctx, "inventory", "hit")
			fill(&item, rec.ProductName, rec.ImageURL, rec.ArtisanName)
		}
	}

	if !resolved(item) && item.ProductID != "" && e.products != nil {
		rec, err := e.products.Product(ctx, item.ProductID)
		switch {
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			e.record(ctx, "product", "error")
			e.logger.Debug("product lookup failed", "error", err, "product_id", item.ProductID)
		case err != nil || rec == nil:
			e.record(ctx, "product", "miss")
		default:
			e.record(ctx, "product", "hit")
			fill(&item, rec.ProductName, rec.ImageURL, rec.ArtisanName)
		}
	}

	if item.Name == "" {
		item.Name = PlaceholderProductName
	}
	if item.Image == "" {
		e.record(ctx, "placeholder", "hit")
		item.Image = e.PlaceholderImage(item.ProductID)
	}

	return item
}

// PlaceholderImage is a deterministic image URL keyed by product id.
func (e *Enricher) PlaceholderImage(productID string) string {
	seed := "handix-product"
	if productID != "" {
		seed = "handix-" + productID
	}
	return e.placeholderBase + "/" + url.PathEscape(seed) + "/300/300"
}

func (e *Enricher) record(ctx context.Context, source, result string) {
	e.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("result", result),
	))
}

func resolved(item domain.LineItem) bool {
	return item.Name != "" && item.Image != ""
}

func fill(item *domain.LineItem, name, image, artisan domain.FlexString) {
	if item.Name == "" && name.Valid {
		item.Name = name.Value
	}
	if item.Image == "" && image.Valid {
		item.Image = image.Value
	}
	if item.Artisan == "" && artisan.Valid {
		item.Artisan = artisan.Value
	}
}
