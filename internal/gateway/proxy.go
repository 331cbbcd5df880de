package gateway

import (
	"context"
	"net/http"

	"github.com/joao-fontenele/handix-orderview/internal/session"
)

type ServiceProxy struct {
	baseURL string
	client  *http.Client
	headers []string
}

// NewServiceProxy forwards requests to baseURL, carrying the session token in
// tokenHeader (Authorization when empty).
func NewServiceProxy(baseURL string, client *http.Client, tokenHeader string) *ServiceProxy {
	if tokenHeader == "" {
		tokenHeader = session.DefaultTokenHeader
	}
	return &ServiceProxy{
		baseURL: baseURL,
		client:  client,
		headers: []string{"Content-Type", "Accept", tokenHeader, session.UserIDHeader},
	}
}

func (p *ServiceProxy) ForwardRequest(ctx context.Context, r *http.Request, path string) (*http.Response, error) {
	target := p.baseURL + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, r.Body)
	if err != nil {
		return nil, err
	}

	for _, h := range p.headers {
		if v := r.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	return p.client.Do(req)
}
