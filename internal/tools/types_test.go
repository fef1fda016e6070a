package tools

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-coda/internal/coda"
)

func decodeToolError(t *testing.T, result *mcp.CallToolResult) toolError {
	t.Helper()
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var envelope toolError
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &envelope))
	return envelope
}

func TestNewToolResultFromError_RateLimitIsRetryable(t *testing.T) {
	result := NewToolResultFromError(&coda.RateLimitError{RetryAfter: 30 * time.Second})

	envelope := decodeToolError(t, result)
	assert.True(t, envelope.Retryable)
	assert.Contains(t, envelope.Error, "rate limit")
}

func TestNewToolResultFromError_AuthNotRetryable(t *testing.T) {
	result := NewToolResultFromError(&coda.AuthenticationError{Message: "API key rejected by upstream"})

	envelope := decodeToolError(t, result)
	assert.False(t, envelope.Retryable)
}

func TestNewToolResultFromError_ServerErrorRetryable(t *testing.T) {
	result := NewToolResultFromError(&coda.APIError{StatusCode: 503, Message: "upstream unavailable"})

	envelope := decodeToolError(t, result)
	assert.True(t, envelope.Retryable)
}

func TestNewToolResultFromError_ClientErrorNotRetryable(t *testing.T) {
	result := NewToolResultFromError(&coda.APIError{StatusCode: 404, Message: "doc not found"})

	envelope := decodeToolError(t, result)
	assert.False(t, envelope.Retryable)
	assert.Contains(t, envelope.Error, "doc not found")
}

func TestIsAuthenticationError(t *testing.T) {
	assert.True(t, IsAuthenticationError(&coda.AuthenticationError{Message: "no key"}))
	assert.False(t, IsAuthenticationError(&coda.APIError{StatusCode: 500}))
	assert.False(t, IsAuthenticationError(nil))
}

func TestFormatAuthenticationError(t *testing.T) {
	assert.Empty(t, FormatAuthenticationError(nil))

	msg := FormatAuthenticationError(&coda.AuthenticationError{Message: "no API key provided"})
	assert.Contains(t, msg, "authentication required")

	msg = FormatAuthenticationError(&coda.APIError{StatusCode: 500})
	assert.Contains(t, msg, "authentication error")
}
