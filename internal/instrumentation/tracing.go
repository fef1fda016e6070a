package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the mcp-coda package.
const TracerName = "github.com/giantswarm/mcp-coda"

// Span attribute keys for MCP and Coda API operations.
const (
	// SpanAttrTool is the MCP tool name.
	SpanAttrTool = "mcp.tool"

	// SpanAttrUserDomain is the user's email domain (lower cardinality than
	// a full address).
	SpanAttrUserDomain = "mcp.user.domain"

	// SpanAttrDocID is the Coda document ID.
	SpanAttrDocID = "coda.doc_id"

	// SpanAttrTableID is the Coda table ID or name.
	SpanAttrTableID = "coda.table_id"

	// SpanAttrPageID is the Coda page ID or name.
	SpanAttrPageID = "coda.page_id"

	// SpanAttrOperation is the operation type (get, list, upsert, etc.).
	SpanAttrOperation = "coda.operation"

	// SpanAttrEndpoint is the classified API endpoint family.
	SpanAttrEndpoint = "coda.endpoint"

	// SpanAttrRequestID is an asynchronous mutation's request ID.
	SpanAttrRequestID = "coda.request_id"

	// SpanAttrRateLimited indicates the upstream rejected the call with 429.
	SpanAttrRateLimited = "coda.rate_limited"
)

// SpanAttributeBuilder helps construct OpenTelemetry span attributes
// with consistent naming and cardinality controls.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithTool adds the MCP tool name attribute.
func (b *SpanAttributeBuilder) WithTool(tool string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrTool, tool))
	return b
}

// WithUserDomain adds the user's email domain attribute. The full address is
// deliberately not recorded.
func (b *SpanAttributeBuilder) WithUserDomain(email string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrUserDomain, ExtractUserDomain(email)))
	return b
}

// WithDoc adds the document ID attribute.
func (b *SpanAttributeBuilder) WithDoc(docID string) *SpanAttributeBuilder {
	if docID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrDocID, docID))
	}
	return b
}

// WithTable adds the table ID attribute.
func (b *SpanAttributeBuilder) WithTable(tableID string) *SpanAttributeBuilder {
	if tableID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrTableID, tableID))
	}
	return b
}

// WithPage adds the page ID attribute.
func (b *SpanAttributeBuilder) WithPage(pageID string) *SpanAttributeBuilder {
	if pageID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrPageID, pageID))
	}
	return b
}

// WithOperation adds the operation type attribute.
func (b *SpanAttributeBuilder) WithOperation(operation string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOperation, operation))
	return b
}

// WithRequestID adds the mutation request ID attribute.
func (b *SpanAttributeBuilder) WithRequestID(requestID string) *SpanAttributeBuilder {
	if requestID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrRequestID, requestID))
	}
	return b
}

// WithRateLimited adds the rate-limited indicator attribute.
func (b *SpanAttributeBuilder) WithRateLimited(limited bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrRateLimited, limited))
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartToolSpan starts a span for an MCP tool invocation.
// Automatically adds the tool name and sets the server span kind.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrTool, toolName))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartAPISpan starts a span for an upstream Coda API call.
// Includes the operation type and classified endpoint family.
func StartAPISpan(ctx context.Context, operation, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+2)
	allAttrs = append(allAttrs,
		attribute.String(SpanAttrOperation, operation),
		attribute.String(SpanAttrEndpoint, string(ClassifyEndpoint(path))),
	)
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "coda."+operation,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// GetSpanID returns the span ID from the current span in context.
// Returns empty string if no valid span is present.
func GetSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}

// SpanContextString returns a human-readable trace context string.
// Format: "trace_id=X span_id=Y" or empty string if no valid context.
func SpanContextString(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return "trace_id=" + span.SpanContext().TraceID().String() +
		" span_id=" + span.SpanContext().SpanID().String()
}
