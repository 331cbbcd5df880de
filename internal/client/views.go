package client

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/handix-orderview/internal/config"
	"github.com/joao-fontenele/handix-orderview/internal/orderview"
)

// NewViewService wires the order view pipeline to the order and inventory
// services named in cfg.
func NewViewService(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (*orderview.Service, error) {
	opts := []Option{WithTokenHeader(cfg.Client.TokenHeader)}
	orders := NewOrdersClient(New(cfg.Services.OrdersURL, httpClient, opts...))
	inventory := NewInventoryClient(New(cfg.Services.InventoryURL, httpClient, opts...))

	enricher, err := orderview.NewEnricher(inventory, inventory, logger,
		orderview.WithPlaceholderImageBase(cfg.OrderView.PlaceholderImageBase),
		orderview.WithConcurrency(cfg.OrderView.EnrichConcurrency),
	)
	if err != nil {
		return nil, fmt.Errorf("create enricher: %w", err)
	}

	policy := orderview.Policy{
		ProcessingDays: cfg.OrderView.ProcessingDays,
		ShippingDays:   cfg.OrderView.ShippingDays,
		DeliveryDays:   cfg.OrderView.DeliveryDays,
	}

	return orderview.NewService(orders, orders, enricher, orderview.NewAssembler(policy, logger), logger)
}
