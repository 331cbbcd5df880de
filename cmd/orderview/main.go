// Command orderview prints assembled order views for operators: a
// customer's purchase history, or one order with its timeline and an
// optional printable invoice.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/joao-fontenele/handix-orderview/internal/client"
	"github.com/joao-fontenele/handix-orderview/internal/config"
	"github.com/joao-fontenele/handix-orderview/internal/domain"
	"github.com/joao-fontenele/handix-orderview/internal/orderview"
	"github.com/joao-fontenele/handix-orderview/internal/session"
)

func main() {
	customerID := flag.String("customer", "", "print the purchase history of this customer")
	orderID := flag.String("order", "", "print this order")
	invoicePath := flag.String("invoice", "", "write the order's invoice to this file")
	setStatus := flag.String("set-status", "", "move the order to this status before printing it")
	user := flag.String("user", "orderview-cli", "user id sent to the services")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(*customerID, *orderID, *invoicePath, *setStatus, *user, logger); err != nil {
		logger.Error("orderview failed", "error", err)
		os.Exit(1)
	}
}

func run(customerID, orderID, invoicePath, setStatus, user string, logger *slog.Logger) error {
	if (customerID == "") == (orderID == "") {
		return errors.New("exactly one of -customer or -order is required")
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := config.Require(
		config.Setting{Key: "ORDERS_SERVICE_URL", Value: cfg.Services.OrdersURL},
		config.Setting{Key: "INVENTORY_SERVICE_URL", Value: cfg.Services.InventoryURL},
	); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.Client.Timeout}
	views, err := client.NewViewService(cfg, httpClient, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Client.Timeout)
	defer cancel()
	ctx = session.WithSession(ctx, session.New(user, cfg.Client.ServiceToken))

	if customerID != "" {
		list, err := views.CustomerOrders(ctx, customerID)
		if err != nil {
			return err
		}
		return printHistory(os.Stdout, list)
	}

	if setStatus != "" {
		status, ok := domain.ParseStatus(setStatus)
		if !ok {
			return fmt.Errorf("unknown status %q", setStatus)
		}
		orders := client.NewOrdersClient(client.New(cfg.Services.OrdersURL, httpClient, client.WithTokenHeader(cfg.Client.TokenHeader)))
		if err := orders.UpdateStatus(ctx, orderID, status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
	}

	doc, view, err := views.Invoice(ctx, orderID)
	if err != nil {
		return err
	}
	if err := printOrder(os.Stdout, *view); err != nil {
		return err
	}

	if invoicePath != "" {
		if err := os.WriteFile(invoicePath, doc, 0o644); err != nil {
			return fmt.Errorf("write invoice: %w", err)
		}
		fmt.Fprintf(os.Stdout, "invoice written to %s\n", invoicePath)
	}
	return nil
}

func printHistory(w io.Writer, list []domain.OrderView) error {
	table := tablewriter.NewWriter(w)
	table.Header("Order", "Date", "Status", "Items", "Total", "Delivery")
	for _, v := range list {
		if err := table.Append([]string{
			v.ID,
			formatDate(v.Date),
			v.Status.Label(),
			fmt.Sprint(len(v.Items)),
			orderview.FormatMoney(v.Total),
			deliveryColumn(v),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func printOrder(w io.Writer, v domain.OrderView) error {
	fmt.Fprintf(w, "Order %s (%s)\n", v.ID, v.Status.Label())
	fmt.Fprintf(w, "Ship to: %s, %s, %s\n", v.ShippingAddress.Name, v.ShippingAddress.Street, v.ShippingAddress.City)
	fmt.Fprintf(w, "Subtotal %s  Shipping %s  Discount %s  Total %s\n\n",
		orderview.FormatMoney(v.Subtotal), orderview.FormatMoney(v.Shipping),
		orderview.FormatMoney(v.Discount), orderview.FormatMoney(v.Total))

	items := tablewriter.NewWriter(w)
	items.Header("Product", "Artisan", "Qty", "Unit price", "Amount")
	for _, item := range v.Items {
		if err := items.Append([]string{
			item.Name,
			item.Artisan,
			fmt.Sprint(item.Quantity),
			orderview.FormatMoney(item.UnitPrice),
			orderview.FormatMoney(item.LineTotal),
		}); err != nil {
			return err
		}
	}
	if err := items.Render(); err != nil {
		return err
	}

	timeline := tablewriter.NewWriter(w)
	timeline.Header("Stage", "When", "Description")
	for _, e := range v.Timeline {
		if err := timeline.Append([]string{e.Stage, formatDate(e.Timestamp), e.Description}); err != nil {
			return err
		}
	}
	return timeline.Render()
}

func deliveryColumn(v domain.OrderView) string {
	if v.Status == domain.OrderStatusCancelled {
		return "-"
	}
	at, ok := orderview.DeliveredOn(v)
	if !ok {
		return domain.NotAvailable
	}
	if v.DeliveredDate != nil {
		return "delivered " + at.Format("Jan 2")
	}
	return "by " + at.Format("Jan 2")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return domain.NotAvailable
	}
	return t.Format("Jan 2, 2006")
}
