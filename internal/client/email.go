package client

import (
	"context"
	"net/http"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

type EmailClient struct {
	*Client
}

func NewEmailClient(c *Client) *EmailClient {
	return &EmailClient{Client: c}
}

func (c *EmailClient) Send(ctx context.Context, msg domain.EmailMessage) error {
	return c.do(ctx, http.MethodPost, "/send", msg, nil)
}
