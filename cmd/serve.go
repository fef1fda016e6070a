package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-coda/internal/instrumentation"
	"github.com/giantswarm/mcp-coda/internal/server"
	"github.com/giantswarm/mcp-coda/internal/tools/automations"
	"github.com/giantswarm/mcp-coda/internal/tools/docs"
	"github.com/giantswarm/mcp-coda/internal/tools/formulas"
	"github.com/giantswarm/mcp-coda/internal/tools/pages"
	"github.com/giantswarm/mcp-coda/internal/tools/permissions"
	"github.com/giantswarm/mcp-coda/internal/tools/rows"
	"github.com/giantswarm/mcp-coda/internal/tools/tables"
)

// Transport type constants
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// Environment variable value constants
const (
	envValueTrue = "true"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	config := &ServeConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP Coda server",
		Long: `Start the MCP Coda server to provide Model Context Protocol (MCP)
tools for the Coda document collaboration API. The server exposes tools for
docs, pages, tables, rows, formulas, controls, automations and permissions.

Supported transports:
  stdio            Standard input/output (default). Credentials come from the
                   CODA_API_KEY environment variable.
  sse              Server-Sent Events over HTTP. Tenants supply credentials
                   per request via the X-Coda-Api-Key header.
  streamable-http  Streamable HTTP transport, same credential model as sse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.loadEnvConfig()
			if err := config.Validate(); err != nil {
				return err
			}
			return runServe(config)
		},
	}

	cmd.Flags().StringVar(&config.Transport, "transport", transportStdio,
		"Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080",
		"HTTP server address (used for sse and streamable-http transports)")
	cmd.Flags().StringVar(&config.SSEEndpoint, "sse-endpoint", "/sse",
		"SSE endpoint path (used for sse transport)")
	cmd.Flags().StringVar(&config.MessageEndpoint, "message-endpoint", "/message",
		"Message endpoint path (used for sse transport)")
	cmd.Flags().StringVar(&config.HTTPEndpoint, "http-endpoint", "/mcp",
		"HTTP endpoint path (used for streamable-http transport)")
	cmd.Flags().BoolVar(&config.ReadOnlyMode, "read-only", false,
		"Disable all tools that modify Coda documents")
	cmd.Flags().StringVar(&config.APIBaseURL, "api-base-url", "",
		"Override the Coda API base URL (default: https://coda.io/apis/v1)")
	cmd.Flags().BoolVar(&config.DebugMode, "debug", false,
		"Enable debug logging")
	cmd.Flags().BoolVar(&config.Metrics.Enabled, "metrics-enabled", false,
		"Start the dedicated metrics server (requires INSTRUMENTATION_ENABLED=true)")
	cmd.Flags().StringVar(&config.Metrics.Addr, "metrics-addr", "",
		"Metrics server listen address (default: "+server.DefaultMetricsAddr+")")

	return cmd
}

// runServe starts the MCP server with the configured transport.
func runServe(config *ServeConfig) error {
	// Set up signal handling for graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation. With INSTRUMENTATION_ENABLED unset this is
	// a no-op provider; tool handlers and middleware treat it uniformly.
	instrConfig := instrumentation.DefaultConfig()
	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			// Don't print in stdio mode as it interferes with MCP communication
			if config.Transport != transportStdio {
				log.Printf("Error shutting down instrumentation: %v", err)
			}
		}
	}()

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	serverConfig.ReadOnlyMode = config.ReadOnlyMode
	serverConfig.APIBaseURL = config.APIBaseURL
	serverConfig.EnvAPIKey = config.APIKey

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithConfig(serverConfig),
		server.WithInstrumentationProvider(provider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			// Don't print in stdio mode as it interferes with MCP communication
			if config.Transport != transportStdio {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	if config.Transport == transportStdio && config.APIKey == "" {
		serverContext.Logger().Warn("no CODA_API_KEY set; all tool calls will fail until one is provided")
	}
	if config.ReadOnlyMode {
		serverContext.Logger().Info("read-only mode enabled; mutating tools are disabled")
	}

	// Session lifecycle hooks keep the active sessions gauge current. With
	// instrumentation disabled the recording calls are no-ops.
	hooks := &mcpserver.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
		provider.Metrics().IncrementActiveSessions(ctx)
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
		provider.Metrics().DecrementActiveSessions(ctx)
	})

	mcpSrv := mcpserver.NewMCPServer("mcp-coda", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithHooks(hooks),
	)

	// Register all tool categories
	if err := docs.RegisterDocTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register doc tools: %w", err)
	}
	if err := pages.RegisterPageTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register page tools: %w", err)
	}
	if err := tables.RegisterTableTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register table tools: %w", err)
	}
	if err := rows.RegisterRowTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register row tools: %w", err)
	}
	if err := formulas.RegisterFormulaTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register formula tools: %w", err)
	}
	if err := automations.RegisterAutomationTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register automation tools: %w", err)
	}
	if err := permissions.RegisterPermissionTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register permission tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportSSE:
		return runSSEServer(mcpSrv, config.HTTPAddr, config.SSEEndpoint, config.MessageEndpoint, shutdownCtx, config.DebugMode)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(mcpSrv, config.HTTPAddr, config.HTTPEndpoint, shutdownCtx, config.DebugMode, provider, serverContext, config.Metrics)
	default:
		return fmt.Errorf("unsupported transport type: %s", config.Transport)
	}
}
