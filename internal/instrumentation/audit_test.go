package instrumentation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation("coda_get_doc")

	// Verify initial state
	if ti.Tool != "coda_get_doc" {
		t.Errorf("Tool = %q, want %q", ti.Tool, "coda_get_doc")
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	// Complete the invocation
	time.Sleep(1 * time.Millisecond) // Ensure some duration
	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	if ti.Duration == 0 {
		t.Error("Duration should be non-zero")
	}
	if ti.Error != "" {
		t.Errorf("Error should be empty, got %q", ti.Error)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("coda_delete_doc")
	err := errors.New("permission denied")

	ti.CompleteWithError(err)

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "permission denied" {
		t.Errorf("Error = %q, want %q", ti.Error, "permission denied")
	}
}

func TestToolInvocation_WithDoc(t *testing.T) {
	ti := NewToolInvocation("coda_get_doc")
	ti.WithDoc("AbCdEf1234")

	if ti.DocID != "AbCdEf1234" {
		t.Errorf("DocID = %q, want %q", ti.DocID, "AbCdEf1234")
	}
}

func TestToolInvocation_WithResource(t *testing.T) {
	ti := NewToolInvocation("coda_get_row")
	ti.WithResource("grid-tasks", "i-row1")

	if ti.TableID != "grid-tasks" {
		t.Errorf("TableID = %q, want %q", ti.TableID, "grid-tasks")
	}
	if ti.ResourceName != "i-row1" {
		t.Errorf("ResourceName = %q, want %q", ti.ResourceName, "i-row1")
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation("test")

	ti.Success = true
	if status := ti.Status(); status != "success" {
		t.Errorf("Status() = %q, want %q", status, "success")
	}

	ti.Success = false
	if status := ti.Status(); status != "error" {
		t.Errorf("Status() = %q, want %q", status, "error")
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation("coda_delete_row").
		WithDoc("AbCdEf1234").
		WithResource("grid-tasks", "i-row1").
		CompleteSuccess()
	ti.TraceID = "abc123def456"

	attrs := ti.LogAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check required attributes
	requiredKeys := []string{"tool", "duration", "status", "trace_id"}
	for _, key := range requiredKeys {
		if _, ok := attrMap[key]; !ok {
			t.Errorf("Missing required attribute: %s", key)
		}
	}

	// Cardinality-controlled: no tenant identifiers in the metrics-adjacent set
	if _, ok := attrMap["doc_id"]; ok {
		t.Error("LogAttrs should not include doc_id")
	}
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation("coda_delete_row").
		WithDoc("AbCdEf1234").
		WithResource("grid-tasks", "i-row1").
		CompleteSuccess()
	ti.TraceID = "abc123def456"
	ti.SpanID = "span789"

	attrs := ti.LogAuditAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check that full values are present in the audit record
	if docID := attrMap["doc_id"].Value.String(); docID != "AbCdEf1234" {
		t.Errorf("doc_id = %q, want %q", docID, "AbCdEf1234")
	}
	if tableID := attrMap["table_id"].Value.String(); tableID != "grid-tasks" {
		t.Errorf("table_id = %q, want %q", tableID, "grid-tasks")
	}

	// Check trace context
	if traceID := attrMap["trace_id"].Value.String(); traceID != "abc123def456" {
		t.Errorf("trace_id = %q, want %q", traceID, "abc123def456")
	}
	if spanID := attrMap["span_id"].Value.String(); spanID != "span789" {
		t.Errorf("span_id = %q, want %q", spanID, "span789")
	}
}

func TestToolInvocation_LogAuditAttrs_AnonymizesPrincipal(t *testing.T) {
	ti := NewToolInvocation("coda_add_permission").
		WithDoc("AbCdEf1234").
		WithPrincipal("ada@example.com").
		CompleteSuccess()

	attrs := ti.LogAuditAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	hash := attrMap["user_hash"].Value.String()
	if !strings.HasPrefix(hash, "user:") {
		t.Errorf("user_hash = %q, want a user: prefixed hash", hash)
	}
	if domain := attrMap["user_domain"].Value.String(); domain != "example.com" {
		t.Errorf("user_domain = %q, want %q", domain, "example.com")
	}

	// The raw address must never appear in any attribute value
	for _, attr := range attrs {
		if strings.Contains(attr.Value.String(), "ada@example.com") {
			t.Errorf("attribute %q leaks the principal address", attr.Key)
		}
	}
}

func TestToolInvocation_MethodChaining(t *testing.T) {
	ti := NewToolInvocation("coda_list_rows").
		WithDoc("AbCdEf1234").
		WithResource("grid-tasks", "").
		CompleteSuccess()

	if ti.Tool != "coda_list_rows" {
		t.Errorf("Tool = %q, want %q", ti.Tool, "coda_list_rows")
	}
	if ti.DocID != "AbCdEf1234" {
		t.Errorf("DocID = %q, want %q", ti.DocID, "AbCdEf1234")
	}
	if !ti.Success {
		t.Error("Success should be true")
	}
}

func TestAuditLogger_New(t *testing.T) {
	// Test with nil logger (should use default)
	al := NewAuditLogger(nil)
	if al.logger == nil {
		t.Error("logger should not be nil when created with nil")
	}

	// Test with custom logger
	logger := slog.Default()
	al = NewAuditLogger(logger)
	if al.logger != logger {
		t.Error("logger should be the provided logger")
	}
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	ctx := context.Background()
	traceID := TraceIDFromContext(ctx)

	if traceID != "" {
		t.Errorf("TraceIDFromContext with no span = %q, want empty string", traceID)
	}
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ctx := context.Background()
	ti := NewToolInvocation("test").WithSpanContext(ctx)

	if ti.TraceID != "" {
		t.Errorf("TraceID = %q, want empty string", ti.TraceID)
	}
	if ti.SpanID != "" {
		t.Errorf("SpanID = %q, want empty string", ti.SpanID)
	}
}

func TestToolInvocation_Complete_NilError(t *testing.T) {
	ti := NewToolInvocation("test")
	ti.Complete(true, nil)

	if ti.Error != "" {
		t.Errorf("Error = %q, want empty string", ti.Error)
	}
}
