package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

// ErrInvalidTransition is returned when a status change is not allowed from
// the order's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

const orderColumns = `order_id, customer_id, order_date, status, total_amount, discount,
	payment_method, delivery_date, cancelled_at, updated_at`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.UpdatedAt = order.OrderDate

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (order_id, customer_id, order_date, status, total_amount, discount, payment_method, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $3)
	`, order.ID, order.CustomerID, order.OrderDate, order.Status, order.TotalAmount, order.Discount, order.PaymentMethod)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, d := range order.Details {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_details (detail_id, order_id, product_id, quantity, price_at_purchase, customization)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), order.ID, d.ProductID, d.Quantity, d.PriceAtPurchase, d.Customization)
		if err != nil {
			return fmt.Errorf("insert order detail: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID loads an order with its details and its customer's address book.
// It returns nil, nil when the order does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	byID := map[string]*domain.Order{order.ID: order}
	if err := r.loadDetails(ctx, byID); err != nil {
		return nil, err
	}

	if order.CustomerInfo, err = r.customer(ctx, order.CustomerID); err != nil {
		return nil, err
	}

	return order, nil
}

// ListByCustomer returns a customer's orders, newest first, each carrying
// its details and the shared customer record.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[string]*domain.Order)
	var ids []string
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []domain.Order{}, nil
	}

	if err := r.loadDetails(ctx, byID); err != nil {
		return nil, err
	}

	customer, err := r.customer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o := byID[id]
		o.CustomerInfo = customer
		orders = append(orders, *o)
	}

	return orders, nil
}

// UpdateStatus moves an order to next, stamping the delivery or cancellation
// time, and returns the updated order with its previous status. It returns
// nil when the order does not exist and ErrInvalidTransition when the
// lifecycle forbids the change.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus, at time.Time) (*domain.Order, domain.OrderStatus, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}

	old, _ := domain.ParseStatus(current)
	if !old.CanTransition(next) {
		return nil, old, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, old, next)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET
			status = $1,
			updated_at = $2,
			delivery_date = CASE WHEN $1 = 'delivered' THEN $2 ELSE delivery_date END,
			cancelled_at = CASE WHEN $1 = 'cancelled' THEN $2 ELSE cancelled_at END
		WHERE order_id = $3
	`, next, at, id)
	if err != nil {
		return nil, old, fmt.Errorf("update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, old, err
	}

	order, err := r.GetByID(ctx, id)
	return order, old, err
}

func (r *OrderRepository) CustomerAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT address_id, customer_id, full_name, street_address, city, district, country, phone, is_default
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_default DESC, address_id
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	addresses := []domain.CustomerAddress{}
	for rows.Next() {
		var a domain.CustomerAddress
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.FullName, &a.StreetAddress, &a.City, &a.District, &a.Country, &a.Phone, &a.IsDefault); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}

func (r *OrderRepository) customer(ctx context.Context, id string) (*domain.Customer, error) {
	c := &domain.Customer{}
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT customer_id, first_name, last_name, email, phone
		FROM customers
		WHERE customer_id = $1
	`, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.Phone = phone.String

	if c.Addresses, err = r.CustomerAddresses(ctx, id); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *OrderRepository) loadDetails(ctx context.Context, byID map[string]*domain.Order) error {
	ids := make([]string, 0, len(byID))
	for id, o := range byID {
		ids = append(ids, id)
		o.Details = []domain.OrderDetail{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, quantity, price_at_purchase, customization
		FROM order_details
		WHERE order_id = ANY($1)
		ORDER BY detail_seq
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var orderID string
		var d domain.OrderDetail
		var customization sql.NullString
		if err := rows.Scan(&orderID, &d.ProductID, &d.Quantity, &d.PriceAtPurchase, &customization); err != nil {
			return err
		}
		d.Customization = customization.String
		o := byID[orderID]
		o.Details = append(o.Details, d)
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var status string
	var deliveryDate, cancelledAt sql.NullTime
	err := row.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &status, &o.TotalAmount, &o.Discount,
		&o.PaymentMethod, &deliveryDate, &cancelledAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.Status = domain.OrderStatus(status)
	if deliveryDate.Valid {
		o.DeliveryDate = &deliveryDate.Time
	}
	if cancelledAt.Valid {
		o.CancelledAt = &cancelledAt.Time
	}
	return o, nil
}
