// Package auth resolves per-request Coda credentials. Credentials arrive as
// HTTP headers on network transports or from the process environment on
// stdio, travel through the request context, and are consumed exactly once
// per tool invocation to construct a tenant-scoped API client. They are never
// cached or shared between requests.
package auth

import (
	"context"
	"net/http"
)

// Header names tenants use to supply credentials on HTTP transports.
const (
	HeaderAPIKey  = "X-Coda-Api-Key"
	HeaderBaseURL = "X-Coda-Base-Url"
)

// Environment variables used as the credential source on stdio transport,
// where a single local tenant owns the process.
const (
	EnvAPIKey  = "CODA_API_KEY"
	EnvBaseURL = "CODA_API_BASE_URL"
)

// Credentials is one tenant's API access material for one request.
type Credentials struct {
	// APIKey is the tenant's Coda API token. Required.
	APIKey string
	// BaseURL optionally overrides the public API endpoint, e.g. for an
	// API-compatible proxy. Empty means the default endpoint.
	BaseURL string
}

// FromHeaders extracts credentials from an inbound HTTP request's headers.
// The result may be invalid (missing key); callers decide whether to reject
// immediately or defer to invocation time.
func FromHeaders(r *http.Request) Credentials {
	return Credentials{
		APIKey:  r.Header.Get(HeaderAPIKey),
		BaseURL: r.Header.Get(HeaderBaseURL),
	}
}

// Valid reports whether the credentials are usable. Only the API key is
// required; the base URL override is optional.
func (c Credentials) Valid() bool {
	return c.APIKey != ""
}

type contextKey struct{}

// WithCredentials returns a context carrying the given credentials.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, contextKey{}, creds)
}

// FromContext returns the credentials carried by ctx. The second return is
// false when no credentials were attached; callers must fail closed in that
// case rather than fall back to any ambient default.
func FromContext(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(contextKey{}).(Credentials)
	return creds, ok
}
