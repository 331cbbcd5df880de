package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/handix-orderview/internal/client"
	"github.com/joao-fontenele/handix-orderview/internal/config"
	"github.com/joao-fontenele/handix-orderview/internal/messaging"
	"github.com/joao-fontenele/handix-orderview/internal/telemetry"
	"github.com/joao-fontenele/handix-orderview/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}
	if err := config.Require(
		config.Setting{Key: "EMAIL_SERVICE_URL", Value: cfg.Services.EmailURL},
		config.Setting{Key: "ORDERS_SERVICE_URL", Value: cfg.Services.OrdersURL},
		config.Setting{Key: "INVENTORY_SERVICE_URL", Value: cfg.Services.InventoryURL},
	); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tel, err := telemetry.Setup(ctx, "worker", cfg.Telemetry.ServiceVersion,
		telemetry.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint),
	)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()

	httpClient := &http.Client{
		Timeout:   cfg.Client.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	views, err := client.NewViewService(cfg, httpClient, logger)
	if err != nil {
		logger.Error("failed to create view service", "error", err)
		os.Exit(1)
	}
	mailer := client.NewEmailClient(client.New(cfg.Services.EmailURL, httpClient))

	consumer := messaging.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, logger)
	defer func() { _ = consumer.Close() }()

	handler := worker.NewStatusChangeHandler(views, mailer, cfg.Client.ServiceToken, logger)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting status change worker", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)

	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
