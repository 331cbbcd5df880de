package email

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

var meter = otel.Meter("email")

// Handler accepts outbound customer notifications. Delivery is logged; no
// mail relay is attached.
type Handler struct {
	logger *slog.Logger
	sent   metric.Int64Counter
}

func NewHandler(logger *slog.Logger) (*Handler, error) {
	sent, err := meter.Int64Counter("email.sent",
		metric.WithDescription("Notifications accepted by content type"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sent counter: %w", err)
	}

	return &Handler{
		logger: logger,
		sent:   sent,
	}, nil
}

type sendResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := mail.ParseAddress(req.To); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid recipient")
		return
	}
	if req.Subject == "" {
		h.writeError(w, http.StatusBadRequest, "missing subject")
		return
	}

	switch req.ContentType {
	case "":
		req.ContentType = domain.ContentTypeText
	case domain.ContentTypeText, domain.ContentTypeHTML:
	default:
		h.writeError(w, http.StatusBadRequest, "unsupported content type")
		return
	}

	h.sent.Add(r.Context(), 1, metric.WithAttributes(attribute.String("content_type", req.ContentType)))
	h.logger.Info("email sent", "to", req.To, "subject", req.Subject, "content_type", req.ContentType, "bytes", len(req.Body))

	h.writeJSON(w, http.StatusOK, sendResponse{Status: "sent"})
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
