package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/handix-orderview/internal/config"
	"github.com/joao-fontenele/handix-orderview/internal/inventory"
	"github.com/joao-fontenele/handix-orderview/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load("8082")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.Require(config.Setting{Key: "POSTGRES_URL", Value: cfg.Postgres.URL}); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	tel, err := telemetry.Setup(ctx, "inventory", cfg.Telemetry.ServiceVersion,
		telemetry.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint),
	)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() { _ = tel.Shutdown(ctx) }()

	db, err := telemetry.OpenDB(ctx, cfg.Postgres.URL, "inventory")
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	handler := inventory.NewHandler(inventory.NewProductRepository(db), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /inventory/product/{id}", telemetry.WithHTTPRoute(handler.HandleInventoryProduct))
	mux.HandleFunc("GET /products/{id}", telemetry.WithHTTPRoute(handler.HandleProduct))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(mux, "inventory", otelhttp.WithSpanNameFormatter(telemetry.SpanName)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting inventory service", "port", cfg.Port)
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
