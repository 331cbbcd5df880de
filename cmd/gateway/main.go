package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/handix-orderview/internal/client"
	"github.com/joao-fontenele/handix-orderview/internal/config"
	"github.com/joao-fontenele/handix-orderview/internal/gateway"
	"github.com/joao-fontenele/handix-orderview/internal/session"
	"github.com/joao-fontenele/handix-orderview/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load("8080")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.Require(
		config.Setting{Key: "ORDERS_SERVICE_URL", Value: cfg.Services.OrdersURL},
		config.Setting{Key: "INVENTORY_SERVICE_URL", Value: cfg.Services.InventoryURL},
	); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	tel, err := telemetry.Setup(ctx, "gateway", cfg.Telemetry.ServiceVersion,
		telemetry.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint),
		telemetry.WithMetrics(true),
	)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() { _ = tel.Shutdown(ctx) }()

	httpClient := &http.Client{
		Timeout:   cfg.Client.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	views, err := client.NewViewService(cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to create view service", "error", err)
		os.Exit(1)
	}

	ordersProxy := gateway.NewServiceProxy(cfg.Services.OrdersURL, httpClient, cfg.Client.TokenHeader)
	inventoryProxy := gateway.NewServiceProxy(cfg.Services.InventoryURL, httpClient, cfg.Client.TokenHeader)
	handler := gateway.NewHandler(views, ordersProxy, inventoryProxy, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /views/orders/{id}", telemetry.WithHTTPRoute(handler.HandleOrderView))
	mux.HandleFunc("GET /views/orders/{id}/invoice", telemetry.WithHTTPRoute(handler.HandleInvoice))
	mux.HandleFunc("GET /views/customers/{customerId}/orders", telemetry.WithHTTPRoute(handler.HandleCustomerOrders))
	mux.HandleFunc("GET /orders/{id}", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("GET /orders/customer", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("POST /orders", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("PUT /orders/{id}/status", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("PATCH /orders/{id}/status", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("GET /addresses/customer/{id}", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("GET /inventory/product/{id}", telemetry.WithHTTPRoute(handler.HandleInventory))
	mux.HandleFunc("GET /products/{id}", telemetry.WithHTTPRoute(handler.HandleInventory))
	mux.Handle("GET /metrics", tel.MetricsHandler)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: otelhttp.NewHandler(
			session.Middleware(cfg.Client.TokenHeader, mux),
			"gateway",
			otelhttp.WithSpanNameFormatter(telemetry.SpanName),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting gateway service", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
