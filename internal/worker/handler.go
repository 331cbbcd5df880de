package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
	"github.com/joao-fontenele/handix-orderview/internal/messaging"
	"github.com/joao-fontenele/handix-orderview/internal/orderview"
	"github.com/joao-fontenele/handix-orderview/internal/session"
)

const serviceUser = "orderview-worker"

type ViewSource interface {
	Order(ctx context.Context, id string) (*domain.OrderView, error)
}

type Mailer interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// StatusChangeHandler re-derives an order's view-model on every status
// change and tells the customer about the latest stage. Delivered orders
// get their invoice.
type StatusChangeHandler struct {
	views        ViewSource
	mailer       Mailer
	serviceToken string
	logger       *slog.Logger
}

func NewStatusChangeHandler(views ViewSource, mailer Mailer, serviceToken string, logger *slog.Logger) *StatusChangeHandler {
	return &StatusChangeHandler{
		views:        views,
		mailer:       mailer,
		serviceToken: serviceToken,
		logger:       logger,
	}
}

func (h *StatusChangeHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderStatusChangedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: decode status event: %v", messaging.ErrPermanent, err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("%w: status event without order id", messaging.ErrPermanent)
	}

	logger := h.logger.With("order_id", event.OrderID, "event_id", event.EventID)
	logger.Info("processing status change", "old_status", event.OldStatus, "new_status", event.NewStatus)

	if event.CustomerEmail == "" {
		logger.Info("no customer email, skipping notification")
		return nil
	}

	ctx = session.WithSession(ctx, session.New(serviceUser, h.serviceToken))

	view, err := h.views.Order(ctx, event.OrderID)
	if errors.Is(err, orderview.ErrOrderNotFound) || errors.Is(err, orderview.ErrMalformedOrder) {
		return fmt.Errorf("%w: %v", messaging.ErrPermanent, err)
	}
	if err != nil {
		return fmt.Errorf("derive order view: %w", err)
	}

	if view.Status != event.NewStatus {
		logger.Debug("order moved on since the event", "current_status", view.Status)
	}

	msg, err := Notification(*view)
	if err != nil {
		return fmt.Errorf("%w: %v", messaging.ErrPermanent, err)
	}
	msg.To = event.CustomerEmail

	if err := h.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	logger.Info("notification sent", "status", view.Status, "content_type", msg.ContentType)
	return nil
}

// Notification builds the customer message for the view's latest timeline
// stage. A delivered order's message is its invoice.
func Notification(v domain.OrderView) (domain.EmailMessage, error) {
	if v.Status == domain.OrderStatusDelivered {
		doc, err := orderview.RenderInvoice(v)
		if err != nil {
			return domain.EmailMessage{}, err
		}
		return domain.EmailMessage{
			Subject:     fmt.Sprintf("Your Handix order %s was delivered", v.ID),
			Body:        string(doc),
			ContentType: domain.ContentTypeHTML,
		}, nil
	}

	var b strings.Builder
	latest, ok := v.LatestEvent()
	if ok {
		b.WriteString(latest.Description)
		b.WriteString("\n")
	}
	if at, ok := orderview.DeliveredOn(v); ok && v.Status != domain.OrderStatusCancelled {
		fmt.Fprintf(&b, "Estimated delivery: %s\n", at.Format("Jan 2, 2006"))
	}
	fmt.Fprintf(&b, "Order total: %s\n", orderview.FormatMoney(v.Total))

	return domain.EmailMessage{
		Subject:     fmt.Sprintf("Your Handix order %s: %s", v.ID, v.Status.Label()),
		Body:        b.String(),
		ContentType: domain.ContentTypeText,
	}, nil
}
