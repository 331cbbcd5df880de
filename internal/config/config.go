package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Services  ServicesConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	Client    ClientConfig
	OrderView OrderViewConfig
	Telemetry TelemetryConfig
}

type ServicesConfig struct {
	OrdersURL    string
	InventoryURL string
	EmailURL     string
}

type PostgresConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type ClientConfig struct {
	Timeout      time.Duration
	TokenHeader  string
	ServiceToken string
}

type TelemetryConfig struct {
	OTLPEndpoint   string
	ServiceVersion string
}

type OrderViewConfig struct {
	ProcessingDays       int
	ShippingDays         int
	DeliveryDays         int
	EnrichConcurrency    int
	PlaceholderImageBase string
}

// Load reads the environment, loading a .env file first when one exists.
// defaultPort is used when PORT is unset.
func Load(defaultPort string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", defaultPort),
		Services: ServicesConfig{
			OrdersURL:    os.Getenv("ORDERS_SERVICE_URL"),
			InventoryURL: os.Getenv("INVENTORY_SERVICE_URL"),
			EmailURL:     os.Getenv("EMAIL_SERVICE_URL"),
		},
		Postgres: PostgresConfig{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_STATUS_TOPIC", "order.status_changed"),
			GroupID: getEnv("KAFKA_GROUP_ID", "orderview-worker"),
		},
		Client: ClientConfig{
			TokenHeader:  getEnv("AUTH_TOKEN_HEADER", "Authorization"),
			ServiceToken: os.Getenv("SERVICE_TOKEN"),
		},
		OrderView: OrderViewConfig{
			PlaceholderImageBase: os.Getenv("PLACEHOLDER_IMAGE_BASE"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceVersion: getEnv("SERVICE_VERSION", "0.1.0"),
		},
	}

	var err error
	if cfg.Client.Timeout, err = getEnvDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.OrderView.ProcessingDays, err = getEnvInt("PROCESSING_LAG_DAYS", 1); err != nil {
		return nil, err
	}
	if cfg.OrderView.ShippingDays, err = getEnvInt("SHIPPING_LAG_DAYS", 3); err != nil {
		return nil, err
	}
	if cfg.OrderView.DeliveryDays, err = getEnvInt("DELIVERY_ESTIMATE_DAYS", 10); err != nil {
		return nil, err
	}
	if cfg.OrderView.EnrichConcurrency, err = getEnvInt("ENRICH_CONCURRENCY", 8); err != nil {
		return nil, err
	}

	if cfg.OrderView.ProcessingDays > cfg.OrderView.ShippingDays || cfg.OrderView.ShippingDays > cfg.OrderView.DeliveryDays {
		return nil, fmt.Errorf("stage offsets must not decrease: processing=%d shipping=%d delivery=%d",
			cfg.OrderView.ProcessingDays, cfg.OrderView.ShippingDays, cfg.OrderView.DeliveryDays)
	}

	return cfg, nil
}

// Setting pairs an environment key with its loaded value.
type Setting struct {
	Key   string
	Value string
}

// Require returns an error naming the first setting, in argument order,
// whose value is empty.
func Require(settings ...Setting) error {
	for _, s := range settings {
		if s.Value == "" {
			return fmt.Errorf("%s is required", s.Key)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a non-negative integer", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
