package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	tests := []struct {
		name     string
		allowAll bool
		origin   string
		want     bool
	}{
		{"allow all", true, "http://example.com", true},
		{"localhost", false, "http://localhost:3000", true},
		{"foreign origin", false, "http://example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(Config{Port: 0, AllowAll: tt.allowAll})

			req := httptest.NewRequest("OPTIONS", "/healthz", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", "GET")
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			got := w.Header().Get("Access-Control-Allow-Origin") != ""
			if got != tt.want {
				t.Errorf("Allow-Origin present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWebsocketUpgradeSkipsTimeout(t *testing.T) {
	mw := timeoutExceptSockets(time.Millisecond)
	var sawDeadline bool
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawDeadline = r.Context().Deadline()
	}))

	req := httptest.NewRequest("GET", "/ws/search", nil)
	req.Header.Set("Upgrade", "websocket")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if sawDeadline {
		t.Error("websocket requests should not carry a deadline")
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/games", nil))
	if !sawDeadline {
		t.Error("plain requests should carry a deadline")
	}
}
