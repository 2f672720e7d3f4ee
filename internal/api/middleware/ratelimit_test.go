package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeleteRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewDeleteRateLimiter()
	handler := rl.Middleware(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/delete", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

func TestDeleteRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewDeleteRateLimiter()
	handler := rl.Middleware(okHandler())

	blocked := false
	for i := 0; i < 12; i++ {
		req := httptest.NewRequest(http.MethodPost, "/delete", nil)
		req.RemoteAddr = "192.0.2.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			blocked = true
		}
	}
	if !blocked {
		t.Error("expected at least one request to be rate limited")
	}
}

func TestDeleteRateLimiter_PerIP(t *testing.T) {
	rl := NewDeleteRateLimiter()
	handler := rl.Middleware(okHandler())

	// Exhaust one IP's burst.
	for i := 0; i < 12; i++ {
		req := httptest.NewRequest(http.MethodPost, "/delete", nil)
		req.RemoteAddr = "192.0.2.3:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different IP still gets through.
	req := httptest.NewRequest(http.MethodPost, "/delete", nil)
	req.RemoteAddr = "192.0.2.4:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("fresh IP: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		xff    string
		want   string
	}{
		{"192.0.2.1:1234", "", "192.0.2.1"},
		{"192.0.2.1:1234", "203.0.113.9", "203.0.113.9"},
		{"192.0.2.1:1234", "203.0.113.9, 198.51.100.2", "203.0.113.9"},
		{"badaddr", "", "badaddr"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if tt.xff != "" {
			req.Header.Set("X-Forwarded-For", tt.xff)
		}
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(remote=%q, xff=%q) = %q, want %q", tt.remote, tt.xff, got, tt.want)
		}
	}
}
