package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	t.Run("strips the bearer prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def")
		req.Header.Set(UserIDHeader, "C-7")

		s := FromRequest(req, "")
		if token, ok := s.Token(); !ok || token != "abc.def" {
			t.Errorf("expected token abc.def, got %q", token)
		}
		if user, ok := s.CurrentUser(); !ok || user != "C-7" {
			t.Errorf("expected user C-7, got %q", user)
		}
	})

	t.Run("reads a custom header verbatim", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Auth-Token", "raw-token")

		s := FromRequest(req, "X-Auth-Token")
		if token, _ := s.Token(); token != "raw-token" {
			t.Errorf("expected raw-token, got %q", token)
		}
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no current user")
		}
	})
}

func TestMiddleware(t *testing.T) {
	var got Session
	var found bool
	h := Middleware("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("expected session on context")
	}
	if token, _ := got.Token(); token != "t1" {
		t.Errorf("expected token t1, got %q", token)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Error("expected no session on a bare context")
	}
}
