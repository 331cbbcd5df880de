package orderview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

var (
	tracer = otel.Tracer("orderview")
	meter  = otel.Meter("orderview")
)

type OrderSource interface {
	Order(ctx context.Context, id string) (*domain.RawOrder, error)
	CustomerOrders(ctx context.Context, customerID string) ([]domain.RawOrder, error)
}

type AddressLookup interface {
	CustomerAddresses(ctx context.Context, customerID string) ([]domain.RawAddress, error)
}

// Service runs the view-model pipeline: fetch the raw order, resolve its
// address, enrich its line items and assemble the result.
type Service struct {
	orders     OrderSource
	addresses  AddressLookup
	enricher   *Enricher
	assembler  *Assembler
	logger     *slog.Logger
	assemblies metric.Int64Counter
}

func NewService(orders OrderSource, addresses AddressLookup, enricher *Enricher, assembler *Assembler, logger *slog.Logger) (*Service, error) {
	assemblies, err := meter.Int64Counter("orderview.assemblies",
		metric.WithDescription("Order view-model assemblies by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create assemblies counter: %w", err)
	}

	return &Service{
		orders:     orders,
		addresses:  addresses,
		enricher:   enricher,
		assembler:  assembler,
		logger:     logger,
		assemblies: assemblies,
	}, nil
}

// Order fetches and assembles a single order. A failure of the order fetch
// itself is returned; enrichment failures are not.
func (s *Service) Order(ctx context.Context, id string) (*domain.OrderView, error) {
	ctx, span := tracer.Start(ctx, "orderview.Order", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	raw, err := s.orders.Order(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = ErrOrderNotFound
		}
		s.fail(ctx, span, err)
		return nil, fmt.Errorf("fetch order %s: %w", id, err)
	}
	if raw == nil {
		s.fail(ctx, span, ErrOrderNotFound)
		return nil, fmt.Errorf("fetch order %s: %w", id, ErrOrderNotFound)
	}

	view, err := s.Build(ctx, *raw)
	if err != nil {
		s.fail(ctx, span, err)
		return nil, err
	}

	s.count(ctx, "ok")
	return &view, nil
}

// CustomerOrders assembles every order of a customer concurrently. Orders
// that cannot be assembled are skipped and logged.
func (s *Service) CustomerOrders(ctx context.Context, customerID string) ([]domain.OrderView, error) {
	ctx, span := tracer.Start(ctx, "orderview.CustomerOrders", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	raws, err := s.orders.CustomerOrders(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.OrderView{}, nil
	}
	if err != nil {
		s.fail(ctx, span, err)
		return nil, fmt.Errorf("fetch orders of customer %s: %w", customerID, err)
	}

	views := make([]*domain.OrderView, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range raws {
		g.Go(func() error {
			view, err := s.Build(gctx, raw)
			if err != nil {
				s.count(gctx, "skipped")
				s.logger.Warn("skipping order", "error", err, "customer_id", customerID, "order_id", orderID(raw))
				return nil
			}
			s.count(gctx, "ok")
			views[i] = &view
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.OrderView, 0, len(views))
	for _, v := range views {
		if v != nil {
			out = append(out, *v)
		}
	}
	span.SetAttributes(attribute.Int("orders.count", len(out)))
	return out, nil
}

// Invoice assembles an order and renders its printable document.
func (s *Service) Invoice(ctx context.Context, id string) ([]byte, *domain.OrderView, error) {
	view, err := s.Order(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := RenderInvoice(*view)
	if err != nil {
		return nil, nil, err
	}
	return doc, view, nil
}

// Build runs address resolution and enrichment for an already fetched raw
// order and assembles it. Enrichment of all items completes before
// assembly.
func (s *Service) Build(ctx context.Context, raw domain.RawOrder) (domain.OrderView, error) {
	if orderID(raw) == "" {
		return domain.OrderView{}, ErrMalformedOrder
	}

	items := s.enricher.EnrichAll(ctx, LineItems(raw))
	addr := ResolveAddress(raw, s.fallbackAddresses(ctx, raw))

	return s.assembler.Assemble(raw, addr, items)
}

// fallbackAddresses consults the address service only when the payload
// carries no address at all.
func (s *Service) fallbackAddresses(ctx context.Context, raw domain.RawOrder) []domain.RawAddress {
	if s.addresses == nil || payloadHasAddress(raw) {
		return nil
	}
	customerID := CustomerID(raw)
	if customerID == "" {
		return nil
	}

	addrs, err := s.addresses.CustomerAddresses(ctx, customerID)
	if err != nil {
		s.logger.Debug("address lookup failed", "error", err, "customer_id", customerID)
		return nil
	}
	return addrs
}

func payloadHasAddress(raw domain.RawOrder) bool {
	if len(raw.Addresses) > 0 || raw.HasLocation() || (raw.ShippingAddress != nil && raw.ShippingAddress.HasLocation()) {
		return true
	}
	if c := customer(raw); c != nil {
		return len(c.Addresses) > 0 || c.HasLocation() || (c.ShippingAddress != nil && c.ShippingAddress.HasLocation())
	}
	return false
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.count(ctx, "error")
}

func (s *Service) count(ctx context.Context, outcome string) {
	s.assemblies.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
