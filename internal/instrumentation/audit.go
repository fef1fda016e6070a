package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/giantswarm/mcp-coda/internal/logging"
)

// ToolInvocation captures one MCP tool invocation for audit logging. Build it
// at the start of the handler, enrich it with request details, complete it
// with the outcome, and hand it to an AuditLogger.
type ToolInvocation struct {
	Tool      string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Request details, populated from tool arguments where present.
	DocID        string
	TableID      string
	ResourceName string

	// PrincipalEmail is the email of a principal named in a sharing
	// operation. It is only ever logged anonymized.
	PrincipalEmail string

	// Trace correlation.
	TraceID string
	SpanID  string
}

// NewToolInvocation starts tracking a tool invocation.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithSpanContext captures the trace and span IDs from ctx for correlation.
// No-op when ctx carries no valid span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		ti.TraceID = sc.TraceID().String()
		ti.SpanID = sc.SpanID().String()
	}
	return ti
}

// WithDoc records the document the invocation targets.
func (ti *ToolInvocation) WithDoc(docID string) *ToolInvocation {
	ti.DocID = docID
	return ti
}

// WithPrincipal records the principal a sharing operation targets.
func (ti *ToolInvocation) WithPrincipal(email string) *ToolInvocation {
	ti.PrincipalEmail = email
	return ti
}

// WithResource records the table and named resource the invocation targets.
func (ti *ToolInvocation) WithResource(tableID, resourceName string) *ToolInvocation {
	ti.TableID = tableID
	ti.ResourceName = resourceName
	return ti
}

// Complete finalizes the invocation with an explicit outcome.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess finalizes the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError finalizes the invocation as failed.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns the metric status label for the invocation.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns cardinality-safe attributes suitable for metrics-adjacent
// logging. Document and table IDs are excluded here; see LogAuditAttrs for
// the full record.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(NormalizeToolName(ti.Tool)),
		logging.Duration(ti.Duration),
		logging.Status(ti.Status()),
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	return attrs
}

// LogAuditAttrs returns the full audit attributes, including tenant-supplied
// identifiers. Intended for the audit log stream, not for metrics.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		logging.Duration(ti.Duration),
		logging.Status(ti.Status()),
	}
	if ti.DocID != "" {
		attrs = append(attrs, logging.DocID(ti.DocID))
	}
	if ti.TableID != "" {
		attrs = append(attrs, logging.TableID(ti.TableID))
	}
	if ti.ResourceName != "" {
		attrs = append(attrs, slog.String("resource_name", ti.ResourceName))
	}
	if ti.PrincipalEmail != "" {
		// The address itself must never reach the log stream.
		attrs = append(attrs, logging.UserHash(ti.PrincipalEmail), logging.Domain(ti.PrincipalEmail))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, logging.SanitizeHost(ti.Error)))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	return attrs
}

// AuditLogger writes structured audit records for tool invocations.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger. A nil logger falls back to
// slog.Default.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogToolInvocation writes one audit record. Failed invocations log at warn
// level so operators can alert on them without parsing attributes.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	level := slog.LevelInfo
	if !ti.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "tool invocation", ti.LogAuditAttrs()...)
}

// TraceIDFromContext returns the trace ID of the active span, or empty when
// no valid span is present.
func TraceIDFromContext(ctx context.Context) string {
	return GetTraceID(ctx)
}
