// Package session carries the caller's identity and auth token through a
// request context. It is the only place credentials are read from; the HTTP
// client attaches the token to collaborator calls.
package session

import (
	"context"
	"net/http"
	"strings"
)

const (
	DefaultTokenHeader = "Authorization"
	UserIDHeader       = "X-User-ID"
)

type Session struct {
	userID string
	token  string
}

func New(userID, token string) Session {
	return Session{userID: userID, token: token}
}

func (s Session) CurrentUser() (string, bool) {
	return s.userID, s.userID != ""
}

func (s Session) Token() (string, bool) {
	return s.token, s.token != ""
}

type contextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// FromRequest reads the token from header, stripping a Bearer prefix, and the
// user id from X-User-ID.
func FromRequest(r *http.Request, header string) Session {
	if header == "" {
		header = DefaultTokenHeader
	}
	token := strings.TrimSpace(r.Header.Get(header))
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return New(r.Header.Get(UserIDHeader), token)
}

// Middleware stores the request's session on its context.
func Middleware(header string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), FromRequest(r, header))))
	})
}
