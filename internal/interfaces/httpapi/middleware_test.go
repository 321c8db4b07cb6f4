package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireUser(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = userIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireUser(next)

	t.Run("rejects missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/weeks/1/picks", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/weeks/1/picks", nil)
		req.Header.Set(userIDHeader, strings.Repeat("u", maxUserIDLength+1))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("passes trimmed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/weeks/1/picks", nil)
		req.Header.Set(userIDHeader, "  alice ")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || seen != "alice" {
			t.Fatalf("expected alice to pass, got status=%d user=%q", rec.Code, seen)
		}
	})
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "not configured", configured: "", provided: "x", want: http.StatusServiceUnavailable},
		{name: "missing", configured: "secret", provided: "", want: http.StatusUnauthorized},
		{name: "wrong", configured: "secret", provided: "guess", want: http.StatusUnauthorized},
		{name: "valid", configured: "secret", provided: "secret", want: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/score-pending", nil)
			if tt.provided != "" {
				req.Header.Set(internalJobTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.configured, next).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}
