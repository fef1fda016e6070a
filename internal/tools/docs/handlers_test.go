package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-coda/internal/server"
)

func newTestServerContext(t *testing.T, baseURL string, readOnly bool) *server.ServerContext {
	t.Helper()
	cfg := server.NewDefaultConfig()
	cfg.APIBaseURL = baseURL
	cfg.EnvAPIKey = "test-key"
	cfg.ReadOnlyMode = readOnly
	sc, err := server.NewServerContext(t.Context(), server.WithConfig(cfg))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleListDocs(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "roadmap", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"doc-1","name":"Roadmap"}],"nextPageToken":"tok-2"}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	result, err := handleListDocs(t.Context(), newRequest(map[string]any{"query": "roadmap"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, `"id": "doc-1"`)
	assert.Contains(t, text, `"hasMore": true`)
}

func TestHandleGetDocMarkdown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/doc-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"doc-1","name":"Roadmap","owner":"ada@example.com","ownerName":"Ada"}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	result, err := handleGetDoc(t.Context(), newRequest(map[string]any{
		"docId":  "doc-1",
		"format": "markdown",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "## Doc: Roadmap")
	assert.Contains(t, text, "Ada <ada@example.com>")
}

func TestHandleGetDocMissingID(t *testing.T) {
	sc := newTestServerContext(t, "http://unused.invalid", false)
	result, err := handleGetDoc(t.Context(), newRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "missing required parameter: docId")
}

func TestHandleListDocsNoCredentials(t *testing.T) {
	cfg := server.NewDefaultConfig()
	sc, err := server.NewServerContext(t.Context(), server.WithConfig(cfg))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	result, err := handleListDocs(t.Context(), newRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)

	var envelope struct {
		Error     string `json:"error"`
		Retryable bool   `json:"retryable"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
	assert.Contains(t, envelope.Error, "no API key provided")
	assert.False(t, envelope.Retryable)
}

func TestHandleDeleteDocReadOnly(t *testing.T) {
	sc := newTestServerContext(t, "http://unused.invalid", true)
	result, err := handleDeleteDoc(t.Context(), newRequest(map[string]any{"docId": "doc-1"}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "read-only mode")
}

func TestHandleDeleteDocTracksPendingMutation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"requestId":"req-42"}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	result, err := handleDeleteDoc(t.Context(), newRequest(map[string]any{"docId": "doc-1"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, 1, sc.PendingMutationCount())
}

func TestHandleGetMutationStatusCompletesPending(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mutationStatus/req-42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"completed":true}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	sc.TrackPendingMutation("req-42")
	require.Equal(t, 1, sc.PendingMutationCount())

	result, err := handleGetMutationStatus(t.Context(), newRequest(map[string]any{"requestId": "req-42"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, 0, sc.PendingMutationCount())
}

func TestHandleGetMutationStatusPendingStaysTracked(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"completed":false}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	sc.TrackPendingMutation("req-42")

	result, err := handleGetMutationStatus(t.Context(), newRequest(map[string]any{"requestId": "req-42"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, 1, sc.PendingMutationCount())
}

func TestHandleTestConnection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/whoami", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Ada","loginId":"ada@example.com"}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	result, err := handleTestConnection(t.Context(), newRequest(nil), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var status struct {
		Connected bool   `json:"connected"`
		User      string `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &status))
	assert.True(t, status.Connected)
	assert.Equal(t, "Ada", status.User)
}

func TestHandleTestConnectionFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL, false)
	result, err := handleTestConnection(t.Context(), newRequest(nil), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var status struct {
		Connected bool   `json:"connected"`
		Error     string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &status))
	assert.False(t, status.Connected)
	assert.NotEmpty(t, status.Error)
}
