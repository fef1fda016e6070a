package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrEndpoint  = "endpoint"
	attrTool      = "tool"
	attrReason    = "reason"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Coda API operation metrics
	codaOperationsTotal   metric.Int64Counter
	codaOperationDuration metric.Float64Histogram
	codaRateLimitedTotal  metric.Int64Counter
	codaAuthFailuresTotal metric.Int64Counter

	// Tool invocation metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels controls whether the endpoint family label is included
	// on Coda operation metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether the endpoint family label is
// included on operation metrics.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_mcp_sessions",
		metric.WithDescription("Number of active MCP sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_mcp_sessions gauge: %w", err)
	}

	// Coda API Operation Metrics
	m.codaOperationsTotal, err = meter.Int64Counter(
		"coda_operations_total",
		metric.WithDescription("Total number of Coda API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coda_operations_total counter: %w", err)
	}

	m.codaOperationDuration, err = meter.Float64Histogram(
		"coda_operation_duration_seconds",
		metric.WithDescription("Coda API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coda_operation_duration_seconds histogram: %w", err)
	}

	m.codaRateLimitedTotal, err = meter.Int64Counter(
		"coda_rate_limited_total",
		metric.WithDescription("Total number of Coda API calls rejected with HTTP 429"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coda_rate_limited_total counter: %w", err)
	}

	m.codaAuthFailuresTotal, err = meter.Int64Counter(
		"coda_auth_failures_total",
		metric.WithDescription("Total number of Coda API authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coda_auth_failures_total counter: %w", err)
	}

	// Tool Invocation Metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"tool_invocation_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_invocation_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCodaOperation records a Coda API operation with operation type, API
// path, status, and duration.
//
// CARDINALITY NOTE: the raw path is never used as a label; it is classified
// into a closed endpoint-family set, and even that only when detailedLabels
// is enabled. Document and table IDs are unbounded across tenants and would
// explode the label space.
func (m *Metrics) RecordCodaOperation(ctx context.Context, operation, path, status string, duration time.Duration) {
	if m.codaOperationsTotal == nil || m.codaOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	if m.detailedLabels {
		attrs = append(attrs, attribute.String(attrEndpoint, string(ClassifyEndpoint(path))))
	}

	m.codaOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.codaOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRateLimited records a Coda API call rejected with HTTP 429.
func (m *Metrics) RecordRateLimited(ctx context.Context, path string) {
	if m.codaRateLimitedTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrEndpoint, string(ClassifyEndpoint(path))),
	}
	m.codaRateLimitedTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAuthFailure records a Coda API authentication failure. The reason is
// a small closed set ("missing_credentials", "upstream_rejected"); no tenant
// identity is attached, and API keys must never reach metric labels.
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	if m.codaAuthFailuresTotal == nil {
		return // Instrumentation not initialized
	}

	m.codaAuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrReason, reason),
	))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status,
// and duration. The tool name is normalized to the known catalog first.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, NormalizeToolName(tool)),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active MCP sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active MCP sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}
