package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/collegegate/collegegate/pkg/core/counselor"
	"github.com/collegegate/collegegate/pkg/gateway/config"
)

func testConfig() config.Config {
	return config.Config{
		Addr:               ":0",
		MaxBodyBytes:       1 << 20,
		CORSAllowedOrigins: map[string]struct{}{"https://app.example": {}},
	}
}

func TestRoutes(t *testing.T) {
	s := New(testConfig(), nil, Deps{})
	h := s.Handler()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/v1/colleges", http.StatusOK},
		{http.MethodGet, "/v1/colleges/compare?ids=3,30", http.StatusOK},
		{http.MethodGet, "/v1/inquiries", http.StatusOK},
		// No Gemini key wired: media routes are absent.
		{http.MethodPost, "/v1/research", http.StatusNotFound},
		{http.MethodPost, "/v1/campus/image", http.StatusNotFound},
		// No admin token: export is a 404.
		{http.MethodGet, "/v1/admin/users.csv", http.StatusNotFound},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != tt.want {
			t.Errorf("%s %s: status=%d, want %d", tt.method, tt.path, rr.Code, tt.want)
		}
	}
}

func TestHandler_SetsRequestID(t *testing.T) {
	s := New(testConfig(), nil, Deps{})
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request id header")
	}
}

func TestHandler_EchoesRequestID(t *testing.T) {
	s := New(testConfig(), nil, Deps{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req_known")
	s.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "req_known" {
		t.Errorf("request id = %q, want req_known", got)
	}
}

// slowResearch blocks until the request context is cancelled.
type slowResearch struct{}

func (slowResearch) SearchCollegeInfo(ctx context.Context, query string) (*counselor.SearchResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHandler_TimesOutSlowRequests(t *testing.T) {
	cfg := testConfig()
	cfg.HandlerTimeout = 20 * time.Millisecond
	s := New(cfg, nil, Deps{Research: slowResearch{}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/research", strings.NewReader(`{"query":"IIT Madras fees"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "request timed out") {
		t.Errorf("body = %q, want timeout envelope", rr.Body.String())
	}
}

func TestHandler_CORSPreflight(t *testing.T) {
	s := New(testConfig(), nil, Deps{})
	h := s.Handler()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/colleges", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Errorf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/v1/colleges", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status=%d, want 403 for unknown origin", rr.Code)
	}
}
