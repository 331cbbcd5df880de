package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DELIVERY_ESTIMATE_DAYS", "")
		t.Setenv("HTTP_CLIENT_TIMEOUT", "")
		t.Setenv("KAFKA_BROKERS", "")

		cfg, err := Load("8080")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.OrderView.DeliveryDays != 10 || cfg.OrderView.ProcessingDays != 1 || cfg.OrderView.ShippingDays != 3 {
			t.Errorf("unexpected stage offsets: %+v", cfg.OrderView)
		}
		if cfg.Client.Timeout != 10*time.Second {
			t.Errorf("expected 10s timeout, got %s", cfg.Client.Timeout)
		}
		if cfg.Kafka.Brokers != nil {
			t.Errorf("expected no brokers, got %v", cfg.Kafka.Brokers)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("DELIVERY_ESTIMATE_DAYS", "14")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("HTTP_CLIENT_TIMEOUT", "3s")

		cfg, err := Load("8080")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "9000" || cfg.OrderView.DeliveryDays != 14 || cfg.Client.Timeout != 3*time.Second {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if want := []string{"k1:9092", "k2:9092"}; !reflect.DeepEqual(cfg.Kafka.Brokers, want) {
			t.Errorf("expected %v, got %v", want, cfg.Kafka.Brokers)
		}
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		t.Setenv("DELIVERY_ESTIMATE_DAYS", "ten")
		if _, err := Load("8080"); err == nil {
			t.Error("expected error for non-numeric delivery days")
		}
	})

	t.Run("rejects decreasing stage offsets", func(t *testing.T) {
		t.Setenv("DELIVERY_ESTIMATE_DAYS", "2")
		if _, err := Load("8080"); err == nil {
			t.Error("expected error when delivery precedes shipping")
		}
	})
}

func TestRequire(t *testing.T) {
	t.Run("accepts non-empty values", func(t *testing.T) {
		if err := Require(Setting{Key: "A", Value: "x"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("names the first empty setting in order", func(t *testing.T) {
		for range 20 {
			err := Require(
				Setting{Key: "ORDERS_SERVICE_URL", Value: "http://orders"},
				Setting{Key: "INVENTORY_SERVICE_URL", Value: ""},
				Setting{Key: "EMAIL_SERVICE_URL", Value: ""},
			)
			if err == nil || err.Error() != "INVENTORY_SERVICE_URL is required" {
				t.Fatalf("expected INVENTORY_SERVICE_URL is required, got %v", err)
			}
		}
	})
}
