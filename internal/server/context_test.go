// Package server provides tests for ServerContext functionality.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-coda/internal/auth"
	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/instrumentation"
	"github.com/giantswarm/mcp-coda/internal/logging"
)

func TestNewServerContext_Defaults(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	require.NotNil(t, sc.Config())
	assert.Equal(t, "mcp-coda", sc.Config().ServerName)
	assert.NotNil(t, sc.Logger())
	assert.NotNil(t, sc.Metrics())
	assert.Nil(t, sc.InstrumentationProvider())
	assert.False(t, sc.IsShutdown())
}

func TestNewServerContext_WithConfig(t *testing.T) {
	cfg := &Config{
		ServerName:   "custom",
		Version:      "1.2.3",
		ReadOnlyMode: true,
	}

	sc, err := NewServerContext(context.Background(), WithConfig(cfg))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Equal(t, "custom", sc.Config().ServerName)
	assert.Equal(t, "1.2.3", sc.Config().Version)
	assert.True(t, sc.ReadOnlyMode())

	// The config is cloned so later caller mutations have no effect.
	cfg.ServerName = "mutated"
	assert.Equal(t, "custom", sc.Config().ServerName)
}

func TestNewServerContext_NilOptionValues(t *testing.T) {
	_, err := NewServerContext(context.Background(), WithLogger(nil))
	assert.ErrorIs(t, err, ErrMissingLogger)

	_, err = NewServerContext(context.Background(), WithConfig(nil))
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func TestResolveCredentials_FromContext(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	ctx := auth.WithCredentials(context.Background(), auth.Credentials{
		APIKey:  "tenant-key",
		BaseURL: "https://coda.example.com/apis/v1",
	})

	creds, err := sc.ResolveCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenant-key", creds.APIKey)
	assert.Equal(t, "https://coda.example.com/apis/v1", creds.BaseURL)

	resolutions, envFallbacks, rejections := sc.Metrics().Snapshot()
	assert.Equal(t, int64(1), resolutions)
	assert.Equal(t, int64(0), envFallbacks)
	assert.Equal(t, int64(0), rejections)
}

func TestResolveCredentials_EnvFallback(t *testing.T) {
	sc, err := NewServerContext(context.Background(), WithConfig(&Config{
		ServerName: "mcp-coda",
		EnvAPIKey:  "env-key",
		APIBaseURL: "https://env.example.com",
	}))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	creds, err := sc.ResolveCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-key", creds.APIKey)
	assert.Equal(t, "https://env.example.com", creds.BaseURL)

	_, envFallbacks, _ := sc.Metrics().Snapshot()
	assert.Equal(t, int64(1), envFallbacks)
}

func TestResolveCredentials_ContextTakesPrecedenceOverEnv(t *testing.T) {
	sc, err := NewServerContext(context.Background(), WithConfig(&Config{
		ServerName: "mcp-coda",
		EnvAPIKey:  "env-key",
	}))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	ctx := auth.WithCredentials(context.Background(), auth.Credentials{APIKey: "header-key"})

	creds, err := sc.ResolveCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "header-key", creds.APIKey)
}

func TestResolveCredentials_FailsClosed(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	_, err = sc.ResolveCredentials(context.Background())
	require.Error(t, err)

	var authErr *coda.AuthenticationError
	assert.True(t, errors.As(err, &authErr), "expected AuthenticationError, got %v", err)

	_, _, rejections := sc.Metrics().Snapshot()
	assert.Equal(t, int64(1), rejections)
}

func TestResolveCredentials_EmptyContextCredentialsRejected(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	// Credentials present in the context but with an empty key must not
	// be treated as valid.
	ctx := auth.WithCredentials(context.Background(), auth.Credentials{APIKey: ""})

	_, err = sc.ResolveCredentials(ctx)
	require.Error(t, err)
	assert.True(t, coda.IsAuthenticationError(err))
}

func TestCodaClient_PerRequestClient(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	ctx := auth.WithCredentials(context.Background(), auth.Credentials{APIKey: "key-a"})

	first, err := sc.CodaClient(ctx)
	require.NoError(t, err)
	second, err := sc.CodaClient(ctx)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "each request must get a fresh client")
}

func TestCodaClient_BaseURLPrecedence(t *testing.T) {
	sc, err := NewServerContext(context.Background(), WithConfig(&Config{
		ServerName: "mcp-coda",
		APIBaseURL: "https://config.example.com",
	}))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	// Tenant-supplied base URL wins over the configured one.
	ctx := auth.WithCredentials(context.Background(), auth.Credentials{
		APIKey:  "k",
		BaseURL: "https://tenant.example.com",
	})
	client, err := sc.CodaClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://tenant.example.com", client.BaseURL())

	// Without a tenant base URL the configured one applies.
	ctx = auth.WithCredentials(context.Background(), auth.Credentials{APIKey: "k"})
	client, err = sc.CodaClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://config.example.com", client.BaseURL())
}

func TestCodaClient_NoCredentials(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	client, err := sc.CodaClient(context.Background())
	assert.Error(t, err)
	assert.Nil(t, client)
}

// newInstrumentedContext builds a ServerContext with an enabled provider
// whose Prometheus scrape output the test can assert against.
func newInstrumentedContext(t *testing.T, cfg *Config) (*ServerContext, *instrumentation.Provider) {
	t.Helper()
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		Enabled:         true,
		MetricsExporter: instrumentation.ExporterPrometheus,
		TracingExporter: instrumentation.ExporterNone,
	})
	require.NoError(t, err)

	opts := []Option{WithInstrumentationProvider(provider)}
	if cfg != nil {
		opts = append(opts, WithConfig(cfg))
	}
	sc, err := NewServerContext(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc, provider
}

func scrapeMetrics(t *testing.T, provider *instrumentation.Provider) string {
	t.Helper()
	rec := httptest.NewRecorder()
	provider.PrometheusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestCodaClient_RecordsOperationMetrics(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer upstream.Close()

	sc, provider := newInstrumentedContext(t, &Config{
		ServerName: "mcp-coda",
		EnvAPIKey:  "k",
		APIBaseURL: upstream.URL,
	})

	client, err := sc.CodaClient(context.Background())
	require.NoError(t, err)
	_, err = client.ListDocs(context.Background(), coda.ListDocsParams{})
	require.NoError(t, err)

	body := scrapeMetrics(t, provider)
	assert.Contains(t, body, "coda_operations_total")
	assert.Contains(t, body, `operation="list"`)
	assert.Contains(t, body, `status="success"`)
}

func TestCodaClient_RecordsRateLimited(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	sc, provider := newInstrumentedContext(t, &Config{
		ServerName: "mcp-coda",
		EnvAPIKey:  "k",
		APIBaseURL: upstream.URL,
	})

	client, err := sc.CodaClient(context.Background())
	require.NoError(t, err)
	_, err = client.WhoAmI(context.Background())
	require.Error(t, err)

	body := scrapeMetrics(t, provider)
	assert.Contains(t, body, "coda_rate_limited_total")
	assert.Contains(t, body, `operation="get"`)
	assert.Contains(t, body, `status="error"`)
}

func TestResolveCredentials_NeverLogsAPIKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	sc, err := NewServerContext(context.Background(),
		WithLogger(logger),
		WithConfig(&Config{ServerName: "mcp-coda", EnvAPIKey: "super-secret-key"}),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	_, err = sc.ResolveCredentials(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "resolved tenant credentials")
	assert.Contains(t, out, "[token:16 chars]")
	assert.NotContains(t, out, "super-secret-key")
}

func TestResolveCredentials_RecordsAuthFailureReason(t *testing.T) {
	sc, provider := newInstrumentedContext(t, nil)

	_, err := sc.ResolveCredentials(context.Background())
	require.Error(t, err)

	body := scrapeMetrics(t, provider)
	assert.Contains(t, body, "coda_auth_failures_total")
	assert.Contains(t, body, `reason="missing_credentials"`)
}

func TestPendingMutationTracking(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Equal(t, 0, sc.PendingMutationCount())

	sc.TrackPendingMutation("mut-1")
	sc.TrackPendingMutation("mut-2")
	sc.TrackPendingMutation("") // empty IDs are ignored
	assert.Equal(t, 2, sc.PendingMutationCount())

	sc.CompletePendingMutation("mut-1")
	assert.Equal(t, 1, sc.PendingMutationCount())

	// Completing an unknown ID is a no-op.
	sc.CompletePendingMutation("mut-unknown")
	assert.Equal(t, 1, sc.PendingMutationCount())
}

func TestShutdown_Idempotent(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	// Second shutdown is a no-op.
	require.NoError(t, sc.Shutdown())

	// Root context is cancelled.
	select {
	case <-sc.Context().Done():
	default:
		t.Error("root context should be cancelled after Shutdown")
	}

	// New mutations are not tracked after shutdown.
	sc.TrackPendingMutation("late")
	assert.Equal(t, 0, sc.PendingMutationCount())
}

func TestConfigClone(t *testing.T) {
	var nilConfig *Config
	assert.Nil(t, nilConfig.Clone())

	original := &Config{ServerName: "a", Version: "v", ReadOnlyMode: true}
	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, *original, *clone)

	clone.ServerName = "b"
	assert.Equal(t, "a", original.ServerName)
}
