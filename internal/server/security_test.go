package server

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

// applyMiddleware runs a request through SecurityMiddleware with a recording
// next handler and returns the recorder plus whether next ran.
func applyMiddleware(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	nextCalled := false
	handler := SecurityMiddleware(cfg, func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})
	req := httptest.NewRequest(method, "/test", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec, nextCalled
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	if !cfg.EnableCORS {
		t.Error("EnableCORS should be true by default")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	for _, m := range []string{"GET", "POST", "OPTIONS"} {
		if !slices.Contains(cfg.AllowedMethods, m) {
			t.Errorf("AllowedMethods = %v, missing %s", cfg.AllowedMethods, m)
		}
	}
	if cfg.MaxWidth != 1<<20 {
		t.Errorf("MaxWidth = %d, want one mebibit", cfg.MaxWidth)
	}
}

func TestSecurityMiddlewareHeaders(t *testing.T) {
	rec, nextCalled := applyMiddleware(DefaultSecurityConfig(), "GET", "")

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if !nextCalled {
		t.Error("next handler was not called")
	}
}

func TestSecurityMiddlewareCORS(t *testing.T) {
	corsConfig := func(origins ...string) SecurityConfig {
		return SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST"},
		}
	}

	tests := []struct {
		name       string
		cfg        SecurityConfig
		origin     string
		wantOrigin string // empty means no CORS headers expected
	}{
		{"disabled", SecurityConfig{EnableCORS: false}, "http://example.com", ""},
		{"wildcard", corsConfig("*"), "http://example.com", "*"},
		{"exact match", corsConfig("http://allowed.com"), "http://allowed.com", "http://allowed.com"},
		{"no match", corsConfig("http://allowed.com"), "http://other.com", ""},
		{"second of several", corsConfig("http://a.com", "http://b.com"), "http://b.com", "http://b.com"},
		{"missing origin with wildcard", corsConfig("*"), "", "*"},
		{"missing origin without wildcard", corsConfig("http://a.com"), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := applyMiddleware(tt.cfg, "GET", tt.origin)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin == "" {
				return
			}
			for _, h := range []string{
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Max-Age",
			} {
				if rec.Header().Get(h) == "" {
					t.Errorf("%s should be set", h)
				}
			}
		})
	}
}

func TestSecurityMiddlewarePreflight(t *testing.T) {
	rec, nextCalled := applyMiddleware(DefaultSecurityConfig(), "OPTIONS", "http://example.com")

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if nextCalled {
		t.Error("next handler should not run for preflight")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("preflight response should carry CORS headers")
	}
}

func TestSecurityMiddlewarePassesAllMethods(t *testing.T) {
	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH"} {
		t.Run(method, func(t *testing.T) {
			rec, nextCalled := applyMiddleware(DefaultSecurityConfig(), method, "")
			if !nextCalled {
				t.Errorf("next handler should run for %s", method)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Errorf("security headers should be set for %s", method)
			}
		})
	}
}
