package test

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/joao-fontenele/handix-orderview/internal/inventory"
	"github.com/joao-fontenele/handix-orderview/internal/orders"
	"github.com/joao-fontenele/handix-orderview/internal/telemetry"
)

type PostgresSetup struct {
	ConnStr string
	cleanup func()
}

func (p *PostgresSetup) Cleanup() {
	p.cleanup()
}

func SetupPostgres(ctx context.Context, t *testing.T) *PostgresSetup {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("handix"),
		postgres.WithUsername("handix"),
		postgres.WithPassword("handix"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := runMigrations(connStr); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}

	return &PostgresSetup{ConnStr: connStr, cleanup: cleanup}
}

func runMigrations(connStr string) error {
	migrationsPath := getMigrationsPath()

	m, err := migrate.New(migrationsPath, connStr)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	projectRoot := filepath.Dir(testDir)
	migrationsDir := filepath.Join(projectRoot, "migrations")
	return "file://" + migrationsDir
}

func SetupKafka(ctx context.Context, t *testing.T) ([]string, func()) {
	t.Helper()

	container, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.8.0",
		kafka.WithClusterID("test-cluster"),
	)
	if err != nil {
		t.Fatalf("failed to start kafka container: %v", err)
	}

	brokers, err := container.Brokers(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get kafka brokers: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers, cleanup
}

// DBWithSchema opens a pool whose every connection resolves tables in schema.
func DBWithSchema(ctx context.Context, t *testing.T, connStr, schema string) *sql.DB {
	t.Helper()

	db, err := telemetry.OpenDB(ctx, connStr, schema)
	if err != nil {
		t.Fatalf("failed to open %s database: %v", schema, err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// Services runs the order and inventory services on httptest servers backed
// by the migrated database.
type Services struct {
	OrdersURL    string
	InventoryURL string
	OrdersRepo   *orders.OrderRepository
	OrdersMux    *http.ServeMux
}

func StartServices(ctx context.Context, t *testing.T, connStr string, events orders.EventPublisher) *Services {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ordersRepo := orders.NewOrderRepository(DBWithSchema(ctx, t, connStr, "orders"))
	ordersHandler := orders.NewHandler(ordersRepo, events, logger)
	ordersMux := http.NewServeMux()
	ordersMux.HandleFunc("POST /orders", ordersHandler.HandleCreate)
	ordersMux.HandleFunc("GET /orders/customer", ordersHandler.HandleListByCustomer)
	ordersMux.HandleFunc("GET /orders/{id}", ordersHandler.HandleGet)
	ordersMux.HandleFunc("PUT /orders/{id}/status", ordersHandler.HandleUpdateStatus)
	ordersMux.HandleFunc("GET /addresses/customer/{id}", ordersHandler.HandleCustomerAddresses)
	ordersServer := httptest.NewServer(ordersMux)
	t.Cleanup(ordersServer.Close)

	inventoryHandler := inventory.NewHandler(inventory.NewProductRepository(DBWithSchema(ctx, t, connStr, "inventory")), logger)
	inventoryMux := http.NewServeMux()
	inventoryMux.HandleFunc("GET /inventory/product/{id}", inventoryHandler.HandleInventoryProduct)
	inventoryMux.HandleFunc("GET /products/{id}", inventoryHandler.HandleProduct)
	inventoryServer := httptest.NewServer(inventoryMux)
	t.Cleanup(inventoryServer.Close)

	return &Services{
		OrdersURL:    ordersServer.URL,
		InventoryURL: inventoryServer.URL,
		OrdersRepo:   ordersRepo,
		OrdersMux:    ordersMux,
	}
}
