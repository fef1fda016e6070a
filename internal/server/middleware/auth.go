package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/giantswarm/mcp-coda/internal/auth"
)

// exemptPaths are endpoints that never require tenant credentials.
var exemptPaths = map[string]bool{
	"/healthz":          true,
	"/readyz":           true,
	"/healthz/detailed": true,
	"/metrics":          true,
}

// missingHeaderError is the JSON body returned when required credential
// headers are absent.
type missingHeaderError struct {
	Error  string `json:"error"`
	Header string `json:"header"`
}

// TenantCredentials creates middleware that extracts per-tenant API
// credentials from request headers and injects them into the request
// context. Requests without an API key are rejected with 401 before they
// reach the MCP handler, so no upstream call can ever run without a key.
//
// Health and metrics endpoints are exempt.
func TenantCredentials() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exemptPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/healthz/") {
				next.ServeHTTP(w, r)
				return
			}

			creds := auth.FromHeaders(r)
			if !creds.Valid() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(missingHeaderError{
					Error:  "missing required header",
					Header: auth.HeaderAPIKey,
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithCredentials(r.Context(), creds)))
		})
	}
}
