package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools/output"
)

// EmptyRequest represents a request with no parameters.
// Used by tools that don't require any input arguments.
type EmptyRequest struct{}

// GetCodaClient returns a fresh Coda API client scoped to the current
// request's tenant credentials.
//
// Tool handlers must use this function instead of caching a client: each
// request carries its own credentials and sharing a client across requests
// would let one tenant's key serve another tenant's call.
//
// # Error Handling
//
// Returns (nil, error) when no credentials can be resolved for the request.
// The error is a *coda.AuthenticationError; no upstream I/O has happened at
// that point.
func GetCodaClient(ctx context.Context, sc *server.ServerContext) (*coda.Client, error) {
	return sc.CodaClient(ctx)
}

// IsAuthenticationError returns true if the error is a credential or
// upstream authentication failure.
func IsAuthenticationError(err error) bool {
	return coda.IsAuthenticationError(err)
}

// FormatAuthenticationError returns a user-friendly error message for
// authentication errors. If the error is not an authentication error,
// returns a generic message.
func FormatAuthenticationError(err error) string {
	if err == nil {
		return ""
	}
	if coda.IsAuthenticationError(err) {
		return "authentication required: " + err.Error()
	}
	return "authentication error: unable to verify your credentials"
}

// toolError is the JSON error envelope returned to MCP clients when an
// upstream call fails.
type toolError struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// NewToolResultFromError converts an upstream error into an MCP error
// result. The envelope tells the model whether retrying the same call can
// succeed: rate limits and transient upstream failures are retryable,
// credential and validation failures are not.
func NewToolResultFromError(err error) *mcp.CallToolResult {
	envelope := toolError{
		Error:     err.Error(),
		Retryable: coda.Retryable(err),
	}

	data, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}

// RenderResult renders a successful upstream response in the format the
// caller asked for. Rendering failures become MCP error results rather than
// Go errors so the model sees them.
func RenderResult(v any, entity, format string) *mcp.CallToolResult {
	text, err := output.Render(v, entity, output.Format(format))
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(text)
}
