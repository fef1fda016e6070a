// Package server provides the ServerContext pattern and related infrastructure
// for the Coda MCP server.
//
// This package implements the core server architecture patterns including:
//
//   - ServerContext: Encapsulates all server dependencies and lifecycle management
//   - Functional Options: Clean dependency injection and configuration
//   - Logger Interface: Abstraction for logging operations
//   - Credential Resolution: Per-request tenant credential handling
//
// The ServerContext Pattern:
//
// The ServerContext struct follows the context pattern commonly used in Go
// applications to encapsulate dependencies and provide clean separation of
// concerns. It includes:
//
//   - Server configuration
//   - Logger interface
//   - Instrumentation provider
//   - Context for cancellation and timeouts
//   - Lifecycle management (shutdown, cleanup)
//
// All dependencies are injected using functional options, making the code
// highly testable and modular.
//
// Example usage:
//
//	ctx := context.Background()
//	serverCtx, err := NewServerContext(ctx,
//		WithLogger(customLogger),
//		WithVersion("1.0.0"),
//		WithReadOnlyMode(true),
//	)
//	if err != nil {
//		return err
//	}
//	defer serverCtx.Shutdown()
//
//	// Build a per-request upstream client
//	client, err := serverCtx.CodaClient(requestCtx)
//
// Credential Resolution:
//
// Tool handlers never hold a shared upstream client. Each request resolves
// tenant credentials (request headers on HTTP transports, environment
// variables on stdio) and builds a fresh client, so one tenant's key can
// never serve another tenant's request. Resolution fails closed: requests
// with no credentials are rejected before any upstream I/O.
//
// The package also provides the HealthChecker (liveness, readiness, and
// detailed health endpoints) and the standalone MetricsServer that serves
// Prometheus metrics on a dedicated listener.
package server
