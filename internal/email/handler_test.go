package email

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_HandleSend(t *testing.T) {
	handler, err := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"accepts a plain text message", `{"to":"nimal@example.com","subject":"Shipped","body":"on its way"}`, http.StatusOK},
		{"accepts an html invoice", `{"to":"nimal@example.com","subject":"Delivered","body":"<html></html>","content_type":"text/html"}`, http.StatusOK},
		{"rejects an invalid recipient", `{"to":"not-an-address","subject":"x"}`, http.StatusBadRequest},
		{"rejects a missing subject", `{"to":"nimal@example.com"}`, http.StatusBadRequest},
		{"rejects unsupported content types", `{"to":"nimal@example.com","subject":"x","content_type":"application/pdf"}`, http.StatusBadRequest},
		{"rejects malformed json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.HandleSend(rec, httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
