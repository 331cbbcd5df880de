package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
	"github.com/joao-fontenele/handix-orderview/internal/orderview"
)

// ViewService is the order view-model pipeline as the gateway uses it.
type ViewService interface {
	Order(ctx context.Context, id string) (*domain.OrderView, error)
	CustomerOrders(ctx context.Context, customerID string) ([]domain.OrderView, error)
	Invoice(ctx context.Context, id string) ([]byte, *domain.OrderView, error)
}

type Handler struct {
	views          ViewService
	ordersProxy    *ServiceProxy
	inventoryProxy *ServiceProxy
	logger         *slog.Logger
}

func NewHandler(views ViewService, ordersProxy, inventoryProxy *ServiceProxy, logger *slog.Logger) *Handler {
	return &Handler{
		views:          views,
		ordersProxy:    ordersProxy,
		inventoryProxy: inventoryProxy,
		logger:         logger,
	}
}

type customerOrdersResponse struct {
	Orders []domain.OrderView `json:"orders"`
}

func (h *Handler) HandleOrderView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	view, err := h.views.Order(r.Context(), id)
	if err != nil {
		h.writeViewError(w, err, "order_id", id)
		return
	}

	h.logger.Info("order view assembled", "order_id", view.ID, "status", view.Status)
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerId")
	if customerID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	views, err := h.views.CustomerOrders(r.Context(), customerID)
	if err != nil {
		h.writeViewError(w, err, "customer_id", customerID)
		return
	}
	if views == nil {
		views = []domain.OrderView{}
	}

	h.logger.Info("customer orders assembled", "customer_id", customerID, "count", len(views))
	h.writeJSON(w, http.StatusOK, customerOrdersResponse{Orders: views})
}

func (h *Handler) HandleInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	doc, view, err := h.views.Invoice(r.Context(), id)
	if err != nil {
		h.writeViewError(w, err, "order_id", id)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.logger.Error("failed to write invoice", "error", err, "order_id", view.ID)
		return
	}
	h.logger.Info("invoice rendered", "order_id", view.ID)
}

func (h *Handler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	h.proxyRequest(w, r, h.ordersProxy, r.URL.Path)
}

func (h *Handler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	h.proxyRequest(w, r, h.inventoryProxy, r.URL.Path)
}

func (h *Handler) proxyRequest(w http.ResponseWriter, r *http.Request, proxy *ServiceProxy, path string) {
	resp, err := proxy.ForwardRequest(r.Context(), r, path)
	if err != nil {
		h.logger.Error("failed to forward request", "error", err, "path", path)
		h.writeError(w, http.StatusBadGateway, "service unavailable")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(resp.StatusCode)

	h.logger.Info("request proxied", "method", r.Method, "path", path, "status", resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Error("failed to copy response body", "error", err)
	}
}

func (h *Handler) writeViewError(w http.ResponseWriter, err error, key, id string) {
	switch {
	case errors.Is(err, orderview.ErrOrderNotFound):
		h.writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, orderview.ErrMalformedOrder):
		h.logger.Warn("malformed order payload", "error", err, key, id)
		h.writeError(w, http.StatusUnprocessableEntity, "order could not be assembled")
	case errors.Is(err, context.Canceled):
		h.logger.Info("request cancelled", key, id)
	default:
		h.logger.Error("failed to load order view", "error", err, key, id)
		h.writeError(w, http.StatusBadGateway, "could not load order")
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
