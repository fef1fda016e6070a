package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/giantswarm/mcp-coda/internal/auth"
	"github.com/giantswarm/mcp-coda/internal/server"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Coda API settings
	ReadOnlyMode bool
	APIBaseURL   string
	APIKey       string

	DebugMode bool

	// Metrics server configuration
	Metrics MetricsServeConfig
}

// MetricsServeConfig holds configuration for the dedicated metrics server.
type MetricsServeConfig struct {
	// Enabled starts the standalone metrics server alongside the MCP
	// transport. Only meaningful when instrumentation is enabled.
	Enabled bool

	// Addr is the metrics server listen address.
	Addr string
}

// loadEnvIfEmpty loads an environment variable into a string pointer if it's empty.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}

// loadEnvConfig fills in configuration from the environment for values the
// user did not set via flags. The API key is never a flag: secrets on the
// command line leak into process listings and shell history.
func (c *ServeConfig) loadEnvConfig() {
	c.APIKey = os.Getenv(auth.EnvAPIKey)
	loadEnvIfEmpty(&c.APIBaseURL, auth.EnvBaseURL)
	loadEnvIfEmpty(&c.Metrics.Addr, "METRICS_ADDR")
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = server.DefaultMetricsAddr
	}
	if !c.Metrics.Enabled && os.Getenv("METRICS_SERVER_ENABLED") == envValueTrue {
		c.Metrics.Enabled = true
	}
}

// Validate checks the configuration for values that would make the server
// fail at runtime. It is called before any network listener is opened.
func (c *ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (valid: stdio, sse, streamable-http)", c.Transport)
	}

	if c.Transport != transportStdio && c.HTTPAddr == "" {
		return fmt.Errorf("http-addr is required for %s transport", c.Transport)
	}

	for _, ep := range []struct {
		name  string
		value string
	}{
		{"sse-endpoint", c.SSEEndpoint},
		{"message-endpoint", c.MessageEndpoint},
		{"http-endpoint", c.HTTPEndpoint},
	} {
		if ep.value == "" || !strings.HasPrefix(ep.value, "/") {
			return fmt.Errorf("%s must be a path starting with '/' (got %q)", ep.name, ep.value)
		}
	}

	if c.APIBaseURL != "" {
		if err := validateAPIBaseURL(c.APIBaseURL); err != nil {
			return err
		}
	}

	return nil
}

// validateAPIBaseURL checks that an upstream base URL override is a usable
// HTTP(S) URL. Plain HTTP is allowed since overrides typically point at
// local proxies during development.
func validateAPIBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("api-base-url must be a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api-base-url must use http or https (got %q)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api-base-url must have a host")
	}
	return nil
}
