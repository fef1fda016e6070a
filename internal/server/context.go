package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/giantswarm/mcp-coda/internal/auth"
	"github.com/giantswarm/mcp-coda/internal/coda"
	"github.com/giantswarm/mcp-coda/internal/instrumentation"
	"github.com/giantswarm/mcp-coda/internal/logging"
)

// Common errors returned by ServerContext.
var (
	ErrMissingLogger = errors.New("logger is required")
	ErrMissingConfig = errors.New("config is required")
	ErrShutdown      = errors.New("server context is shut down")
)

// DefaultShutdownTimeout is how long graceful HTTP shutdown waits before
// forcing connections closed.
const DefaultShutdownTimeout = 30 * time.Second

// Logger is the leveled logging surface used throughout the server.
type Logger = logging.Logger

// Config holds server configuration.
type Config struct {
	// ServerName is the name reported to MCP clients during initialization.
	ServerName string

	// Version is the server version string.
	Version string

	// ReadOnlyMode disables all tools that mutate upstream state.
	ReadOnlyMode bool

	// APIBaseURL overrides the upstream API base URL for all tenants.
	// Empty means the client default.
	APIBaseURL string

	// EnvAPIKey is the API key sourced from the environment. It is only
	// used as a credential fallback for the stdio transport, where there
	// are no request headers to carry per-tenant credentials.
	EnvAPIKey string
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName: "mcp-coda",
		Version:    "dev",
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Metrics tracks internal operational counters for the server context.
// These are coarse process-level counters, distinct from the exported
// instrumentation metrics.
type Metrics struct {
	mu sync.RWMutex

	// credentialResolutions counts successful credential resolutions.
	credentialResolutions int64
	// envFallbacks counts resolutions served from environment credentials.
	envFallbacks int64
	// credentialRejections counts requests rejected for missing credentials.
	credentialRejections int64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordCredentialResolution records a successful credential resolution.
func (m *Metrics) RecordCredentialResolution(fromEnv bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentialResolutions++
	if fromEnv {
		m.envFallbacks++
	}
}

// RecordCredentialRejection records a request rejected for missing credentials.
func (m *Metrics) RecordCredentialRejection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentialRejections++
}

// Snapshot returns current counter values.
func (m *Metrics) Snapshot() (resolutions, envFallbacks, rejections int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credentialResolutions, m.envFallbacks, m.credentialRejections
}

// ServerContext holds shared dependencies for the MCP server and tool
// handlers. It is created once at startup and passed to every tool
// registration.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	logger  Logger
	config  *Config
	metrics *Metrics

	instrumentationProvider *instrumentation.Provider

	mu       sync.RWMutex
	shutdown bool

	// pendingMutations tracks upstream mutation request IDs that have been
	// acknowledged but not yet confirmed complete. Used for shutdown
	// reporting and the detailed health endpoint.
	pendingMutations map[string]time.Time
}

// NewServerContext creates a ServerContext with the given options.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	ctx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:              ctx,
		cancel:           cancel,
		metrics:          NewMetrics(),
		pendingMutations: make(map[string]time.Time),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if sc.config == nil {
		sc.config = NewDefaultConfig()
	}
	if sc.logger == nil {
		sc.logger = DefaultLogger()
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// validate checks that required dependencies are present.
func (sc *ServerContext) validate() error {
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Context returns the server's root context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Logger returns the configured logger.
func (sc *ServerContext) Logger() Logger {
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	return sc.config
}

// Metrics returns the internal metrics counters.
func (sc *ServerContext) Metrics() *Metrics {
	return sc.metrics
}

// InstrumentationProvider returns the instrumentation provider, which may
// be nil when instrumentation is not configured.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	return sc.instrumentationProvider
}

// ReadOnlyMode reports whether mutating tools are disabled.
func (sc *ServerContext) ReadOnlyMode() bool {
	return sc.config.ReadOnlyMode
}

// ResolveCredentials resolves tenant credentials for the current request.
// HTTP transports inject credentials into the request context; the stdio
// transport falls back to environment-sourced credentials. Resolution
// fails closed: no credentials means an authentication error before any
// upstream I/O.
func (sc *ServerContext) ResolveCredentials(ctx context.Context) (auth.Credentials, error) {
	if creds, ok := auth.FromContext(ctx); ok && creds.Valid() {
		sc.metrics.RecordCredentialResolution(false)
		sc.logger.Debug("resolved tenant credentials",
			"source", "request",
			"api_key", logging.SanitizeToken(creds.APIKey))
		return creds, nil
	}

	if sc.config.EnvAPIKey != "" {
		sc.metrics.RecordCredentialResolution(true)
		sc.logger.Debug("resolved tenant credentials",
			"source", "environment",
			"api_key", logging.SanitizeToken(sc.config.EnvAPIKey))
		return auth.Credentials{
			APIKey:  sc.config.EnvAPIKey,
			BaseURL: sc.config.APIBaseURL,
		}, nil
	}

	sc.metrics.RecordCredentialRejection()
	if provider := sc.instrumentationProvider; provider != nil && provider.Enabled() {
		provider.Metrics().RecordAuthFailure(ctx, "missing_credentials")
	}
	return auth.Credentials{}, &coda.AuthenticationError{
		Message: "no API key provided: set the X-Coda-Api-Key header or the CODA_API_KEY environment variable",
	}
}

// CodaClient builds a fresh upstream API client for the current request's
// credentials. Clients are never shared across requests so one tenant's
// credentials can never leak into another tenant's calls.
func (sc *ServerContext) CodaClient(ctx context.Context) (*coda.Client, error) {
	creds, err := sc.ResolveCredentials(ctx)
	if err != nil {
		return nil, err
	}

	opts := []coda.ClientOption{}
	baseURL := creds.BaseURL
	if baseURL == "" {
		baseURL = sc.config.APIBaseURL
	}
	if baseURL != "" {
		opts = append(opts, coda.WithBaseURL(baseURL))
	}
	if provider := sc.instrumentationProvider; provider != nil && provider.Enabled() {
		opts = append(opts, coda.WithObserver(sc.observeAPICall))
	}
	return coda.NewClient(creds.APIKey, opts...), nil
}

// observeAPICall records a client span and operation metrics around one
// upstream API call. The path is classified into closed label sets before it
// reaches any metric; only spans carry it, and never credentials.
func (sc *ServerContext) observeAPICall(ctx context.Context, method, path string) (context.Context, func(error)) {
	provider := sc.instrumentationProvider
	operation := instrumentation.ClassifyOperation(method, path)
	ctx, span := instrumentation.StartAPISpan(ctx, operation, path)
	start := time.Now()

	return ctx, func(err error) {
		defer span.End()

		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, err)
		}

		metrics := provider.Metrics()
		metrics.RecordCodaOperation(ctx, operation, path, status, time.Since(start))

		var rateLimited *coda.RateLimitError
		if errors.As(err, &rateLimited) {
			span.SetAttributes(instrumentation.NewSpanAttributeBuilder().WithRateLimited(true).Build()...)
			metrics.RecordRateLimited(ctx, path)
		}

		var authErr *coda.AuthenticationError
		if errors.As(err, &authErr) {
			metrics.RecordAuthFailure(ctx, "upstream_rejected")
		}
	}
}

// TrackPendingMutation records an acknowledged-but-incomplete upstream
// mutation request ID.
func (sc *ServerContext) TrackPendingMutation(requestID string) {
	if requestID == "" {
		return
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return
	}
	sc.pendingMutations[requestID] = time.Now()
}

// CompletePendingMutation removes a mutation request ID from tracking.
func (sc *ServerContext) CompletePendingMutation(requestID string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.pendingMutations, requestID)
}

// PendingMutationCount returns the number of tracked pending mutations.
func (sc *ServerContext) PendingMutationCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.pendingMutations)
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown gracefully shuts down the server context. It cancels the root
// context and shuts down the instrumentation provider. Safe to call more
// than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	if sc.shutdown {
		sc.mu.Unlock()
		return nil
	}
	sc.shutdown = true
	pending := len(sc.pendingMutations)
	sc.mu.Unlock()

	if pending > 0 {
		sc.logger.Warn("shutting down with unconfirmed mutations", "pending", pending)
	}

	sc.cancel()

	if sc.instrumentationProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sc.instrumentationProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down instrumentation: %w", err)
		}
	}

	return nil
}
