package domain

const (
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html"
)

// EmailMessage is the body of the email service's POST /send.
type EmailMessage struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	ContentType string `json:"content_type,omitempty"`
}
