package inventory

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

type Catalog interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

func NewHandler(catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

type inventoryResponse struct {
	Success bool `json:"success"`
	*domain.Product
	Error string `json:"error,omitempty"`
}

// HandleInventoryProduct serves the inventory view of a product, wrapped in
// a success envelope.
func (h *Handler) HandleInventoryProduct(w http.ResponseWriter, r *http.Request) {
	product, status := h.lookup(w, r)
	switch {
	case product != nil:
		h.writeJSON(w, http.StatusOK, inventoryResponse{Success: true, Product: product})
	case status == http.StatusNotFound:
		h.writeJSON(w, status, inventoryResponse{Error: "product not found"})
	}
}

// HandleProduct serves the product detail record.
func (h *Handler) HandleProduct(w http.ResponseWriter, r *http.Request) {
	product, status := h.lookup(w, r)
	switch {
	case product != nil:
		h.writeJSON(w, http.StatusOK, product)
	case status == http.StatusNotFound:
		h.writeError(w, status, "product not found")
	}
}

// lookup resolves the product named by the path. Failures other than not
// found are written to w.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Product, int) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return nil, http.StatusBadRequest
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "product_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, http.StatusInternalServerError
	}

	if product == nil {
		return nil, http.StatusNotFound
	}

	h.logger.Info("product retrieved", "product_id", id)
	return product, http.StatusOK
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
