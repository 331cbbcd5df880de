// Package client calls the order, address, inventory and product services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
	"github.com/joao-fontenele/handix-orderview/internal/session"
)

type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenHeader string
}

type Option func(*Client)

// WithTokenHeader sets the header the session token is sent in. Tokens sent
// in Authorization get a Bearer prefix.
func WithTokenHeader(header string) Option {
	return func(c *Client) {
		if header != "" {
			c.tokenHeader = header
		}
	}
}

func New(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		tokenHeader: session.DefaultTokenHeader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any non-2xx response other than 404.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachToken(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return
	}
	token, ok := s.Token()
	if !ok {
		return
	}
	if strings.EqualFold(c.tokenHeader, session.DefaultTokenHeader) {
		token = "Bearer " + token
	}
	req.Header.Set(c.tokenHeader, token)
	if user, ok := s.CurrentUser(); ok {
		req.Header.Set(session.UserIDHeader, user)
	}
}
