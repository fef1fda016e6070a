package tables

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-coda/internal/server"
)

func newTestServerContext(t *testing.T, baseURL string) *server.ServerContext {
	t.Helper()
	cfg := server.NewDefaultConfig()
	cfg.APIBaseURL = baseURL
	cfg.EnvAPIKey = "test-key"
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

func TestHandleListTablesTypeFilter(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/doc-1/tables", r.URL.Path)
		// repeated query keys, not comma-joined
		assert.Equal(t, []string{"table", "view"}, r.URL.Query()["tableTypes"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"grid-1","name":"Tasks","tableType":"table","rowCount":12}]}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL)
	result, err := handleListTables(t.Context(), newRequest(map[string]any{
		"docId":      "doc-1",
		"tableTypes": "table, view",
		"format":     "markdown",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "## Tables (1)")
	assert.Contains(t, text, "| grid-1 | Tasks | table | 12 |")
}

func TestHandleGetColumn(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/doc-1/tables/grid-1/columns/c-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c-1","name":"Status","format":{"type":"select"}}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL)
	result, err := handleGetColumn(t.Context(), newRequest(map[string]any{
		"docId":          "doc-1",
		"tableIdOrName":  "grid-1",
		"columnIdOrName": "c-1",
		"format":         "markdown",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "## Column: Status")
	assert.Contains(t, text, "| Type | select |")
}

func TestHandleGetTableMissingArgs(t *testing.T) {
	sc := newTestServerContext(t, "http://unused.invalid")
	result, err := handleGetTable(t.Context(), newRequest(map[string]any{"docId": "doc-1"}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "tableIdOrName")
}

func TestHandleListColumnsVisibleOnly(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("visibleOnly"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer upstream.Close()

	sc := newTestServerContext(t, upstream.URL)
	result, err := handleListColumns(t.Context(), newRequest(map[string]any{
		"docId":         "doc-1",
		"tableIdOrName": "grid-1",
		"visibleOnly":   true,
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
}
