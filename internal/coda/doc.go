// Package coda implements a typed client for the Coda REST API (v1).
//
// The client covers documents, pages, tables, columns, rows, formulas,
// controls, automations, permissions and publishing. All operations funnel
// through a single request executor that handles authentication, query
// encoding, pagination normalization and error classification.
//
// # Multi-tenant usage
//
// A Client is cheap to construct and holds exactly one tenant's credentials.
// Construct a fresh Client per inbound request and discard it afterwards;
// never cache or share a Client between tenants:
//
//	client := coda.NewClient(apiKey, coda.WithBaseURL(tenantURL))
//	docs, err := client.ListDocs(ctx, coda.ListDocsParams{Limit: 25})
//
// # Error handling
//
// Failures are classified into three distinguishable kinds:
//
//   - *AuthenticationError: missing or rejected credentials (never retry)
//   - *RateLimitError: HTTP 429, carries the upstream Retry-After hint
//   - *APIError: any other upstream rejection, carries status and message
//
// Callers dispatch with errors.As, or use Retryable to decide retry policy.
// The client itself never retries.
//
// # Asynchronous mutations
//
// Write operations return a MutationResult acknowledgment, not the final
// state. The mutation may still be executing remotely; poll completion with
// MutationStatus using the acknowledgment's RequestID.
package coda
