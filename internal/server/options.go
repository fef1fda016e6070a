package server

import (
	"log/slog"
	"os"

	"github.com/giantswarm/mcp-coda/internal/instrumentation"
	"github.com/giantswarm/mcp-coda/internal/logging"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the server configuration. The config is cloned so later
// mutations by the caller do not affect the running server.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the name reported to MCP clients.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithVersion sets the server version string.
func WithVersion(version string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.Version = version
		return nil
	}
}

// WithReadOnlyMode disables all mutating tools.
func WithReadOnlyMode(readOnly bool) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ReadOnlyMode = readOnly
		return nil
	}
}

// WithInstrumentationProvider sets the instrumentation provider. A nil
// provider is allowed and leaves instrumentation disabled.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// DefaultLogger returns a text slog logger writing to stderr at info level.
// Stdout is reserved for the stdio MCP transport.
func DefaultLogger() Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return logging.NewSlogAdapter(slog.New(handler))
}
