// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-coda server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, Coda API operations, and tool invocations
//   - Distributed tracing for request flows and upstream API calls
//   - Prometheus metrics export via a dedicated /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_mcp_sessions: Gauge of active MCP sessions
//
// Coda API Operation Metrics:
//   - coda_operations_total: Counter of upstream API operations by operation and status
//   - coda_operation_duration_seconds: Histogram of upstream operation durations
//   - coda_rate_limited_total: Counter of HTTP 429 rejections by endpoint family
//   - coda_auth_failures_total: Counter of credential rejections
//
// Tool Invocation Metrics:
//   - tool_invocations_total: Counter of MCP tool invocations by tool and status
//   - tool_invocation_duration_seconds: Histogram of tool invocation durations
//
// # Cardinality Considerations
//
// Document, table, page and row identifiers are unbounded in a multi-tenant
// deployment and are NEVER used as metric labels. API paths are classified
// into a closed set of endpoint families (see ClassifyEndpoint) and tool
// names validated against the fixed catalog (see NormalizeToolName) before
// labeling. Tenant API keys never reach metrics, traces, or logs.
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - HTTP request handling
//   - MCP tool invocations
//   - Upstream Coda API calls
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-coda)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "mcp-coda",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordHTTPRequest(ctx, "POST", "/mcp", 200, time.Since(start))
//	recorder.RecordCodaOperation(ctx, "list", "/docs", "success", time.Since(start))
package instrumentation
