package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if provider.Enabled() {
		t.Error("provider should be disabled")
	}
	if provider.Metrics() == nil {
		t.Error("Metrics() should not return nil even when disabled")
	}
	if provider.AuditLogger() == nil {
		t.Error("AuditLogger() should not return nil")
	}
	if provider.PrometheusHandler() != nil {
		t.Error("PrometheusHandler() should be nil when disabled")
	}

	// Recording on a disabled provider must be a safe no-op
	provider.Metrics().RecordHTTPRequest(context.Background(), "POST", "/mcp", 200, time.Millisecond)

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() on disabled provider error = %v", err)
	}
}

func TestNewProvider_Prometheus(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, Config{
		Enabled:         true,
		ServiceName:     "mcp-coda",
		ServiceVersion:  "test",
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("provider should be enabled")
	}
	if provider.Metrics() == nil {
		t.Fatal("Metrics() returned nil")
	}
	if provider.PrometheusHandler() == nil {
		t.Error("PrometheusHandler() should not be nil with prometheus exporter")
	}

	// Exercise the pipeline end to end
	provider.Metrics().RecordCodaOperation(ctx, OperationList, "/docs", StatusSuccess, time.Millisecond)
}

func TestProvider_NilEnabled(t *testing.T) {
	var provider *Provider
	if provider.Enabled() {
		t.Error("nil provider should report disabled")
	}
}
