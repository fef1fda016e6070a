package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/giantswarm/mcp-coda/internal/instrumentation"
)

// DefaultMetricsAddr is the default listen address for the metrics server.
const DefaultMetricsAddr = ":9090"

// MetricsServerConfig holds configuration for the standalone metrics server.
type MetricsServerConfig struct {
	// Addr is the listen address. Empty means DefaultMetricsAddr.
	Addr string

	// Enabled controls whether the metrics server should be started.
	Enabled bool

	// InstrumentationProvider supplies the Prometheus handler.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer serves Prometheus metrics on a dedicated listener, separate
// from the MCP transport so scrapes never share a port with tenant traffic.
type MetricsServer struct {
	addr     string
	provider *instrumentation.Provider

	mu     sync.Mutex
	server *http.Server
}

// NewMetricsServer creates a metrics server from the given configuration.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.InstrumentationProvider == nil {
		return nil, fmt.Errorf("instrumentation provider is required")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	return &MetricsServer{
		addr:     addr,
		provider: config.InstrumentationProvider,
	}, nil
}

// Addr returns the configured listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}

// Start runs the metrics server. It blocks until the server stops and
// returns http.ErrServerClosed after a graceful Shutdown.
func (s *MetricsServer) Start() error {
	mux := http.NewServeMux()

	if handler := s.provider.PrometheusHandler(); handler != nil {
		mux.Handle("/metrics", handler)
	} else {
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "metrics exporter not configured", http.StatusNotFound)
		})
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	return server.ListenAndServe()
}

// Shutdown gracefully stops the metrics server. It is safe to call even
// when Start was never called.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
