package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

type Store interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, next domain.OrderStatus, at time.Time) (*domain.Order, domain.OrderStatus, error)
	CustomerAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event domain.OrderStatusChangedEvent) error
}

type Handler struct {
	store  Store
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler builds the order service handler. events may be nil, in which
// case status changes are not published.
func NewHandler(store Store, events EventPublisher, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type createOrderRequest struct {
	CustomerID    string               `json:"customer_id"`
	PaymentMethod string               `json:"payment_method"`
	ShippingFee   decimal.Decimal      `json:"shipping_fee"`
	Discount      decimal.Decimal      `json:"discount"`
	Items         []domain.OrderDetail `json:"items"`
}

// HandleCreate stores a checkout. The total is the item subtotal plus the
// shipping fee; the discount is recorded alongside it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerID == "" || len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "customer_id and items are required")
		return
	}

	total := decimal.Max(req.ShippingFee, decimal.Zero)
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.PriceAtPurchase.IsNegative() {
			h.writeError(w, http.StatusBadRequest, "invalid item")
			return
		}
		total = total.Add(item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &domain.Order{
		CustomerID:    req.CustomerID,
		OrderDate:     h.now(),
		Status:        domain.OrderStatusPlaced,
		TotalAmount:   total,
		Discount:      decimal.Max(req.Discount, decimal.Zero),
		PaymentMethod: req.PaymentMethod,
		Details:       req.Items,
	}

	if err := h.store.Create(r.Context(), order); err != nil {
		h.logger.Error("failed to create order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := h.store.GetByID(r.Context(), order.ID)
	if err != nil || created == nil {
		h.logger.Error("failed to reload created order", "error", err, "order_id", order.ID)
		created = order
	}

	h.publish(r.Context(), created, "")

	h.logger.Info("order created", "order_id", created.ID, "customer_id", created.CustomerID)
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order retrieved", "order_id", order.ID)
	h.writeJSON(w, http.StatusOK, order)
}

type customerOrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []domain.Order `json:"orders"`
	Error   string         `json:"error,omitempty"`
}

func (h *Handler) HandleListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		h.writeJSON(w, http.StatusBadRequest, customerOrdersResponse{Error: "missing customerId"})
		return
	}

	orders, err := h.store.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "customer_id", customerID)
		h.writeJSON(w, http.StatusInternalServerError, customerOrdersResponse{Error: "internal server error"})
		return
	}

	h.logger.Info("orders listed", "customer_id", customerID, "count", len(orders))
	h.writeJSON(w, http.StatusOK, customerOrdersResponse{Success: true, Orders: orders})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	next, ok := domain.ParseStatus(req.Status)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	order, old, err := h.store.UpdateStatus(r.Context(), id, next, h.now())
	if errors.Is(err, ErrInvalidTransition) {
		h.writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to update order status", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.publish(r.Context(), order, old)

	h.logger.Info("order status updated", "order_id", order.ID, "old_status", old, "status", order.Status)
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleCustomerAddresses(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	addresses, err := h.store.CustomerAddresses(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to list addresses", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, addresses)
}

func (h *Handler) publish(ctx context.Context, order *domain.Order, old domain.OrderStatus) {
	if h.events == nil {
		return
	}

	event := domain.OrderStatusChangedEvent{
		EventID:    uuid.New().String(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		OldStatus:  old,
		NewStatus:  order.Status,
		Timestamp:  h.now(),
	}
	if order.CustomerInfo != nil {
		event.CustomerEmail = order.CustomerInfo.Email
	}

	if err := h.events.PublishStatusChanged(ctx, event); err != nil {
		h.logger.Error("failed to publish status change", "error", err, "order_id", order.ID)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
