package server

import (
	"net/http"
	"strings"
)

// SecurityConfig holds the security-related settings of the HTTP server.
type SecurityConfig struct {
	// EnableCORS enables cross-origin resource sharing headers.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed to call the API. The
	// wildcard "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised in CORS responses.
	AllowedMethods []string
	// MaxWidth caps the bitwidth of literals accepted by the API.
	// Literals beyond the cap are rejected before any conversion work.
	MaxWidth uint
}

// DefaultSecurityConfig returns the default security configuration: CORS
// enabled for any origin, and a one-mebibit width cap that keeps a single
// request from monopolizing the server.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		MaxWidth:       1 << 20,
	}
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a request
// origin, or "" if the origin is not allowed.
func (c SecurityConfig) allowedOrigin(origin string) string {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin && origin != "" {
			return origin
		}
	}
	return ""
}

// SecurityMiddleware wraps a handler with standard security headers and,
// when enabled, CORS handling including OPTIONS preflight short-circuiting.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := config.allowedOrigin(r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
