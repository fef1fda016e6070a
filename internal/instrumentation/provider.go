package instrumentation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Provider wires up OpenTelemetry metrics and tracing according to a Config
// and owns their lifecycle. A disabled provider is a cheap no-op: all
// recording methods on its Metrics are nil-safe.
type Provider struct {
	config  Config
	enabled bool

	metrics     *Metrics
	auditLogger *AuditLogger

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider

	promRegistry *prometheus.Registry
}

// NewProvider initializes instrumentation from the given config. When the
// config is disabled the returned provider records nothing and Shutdown is a
// no-op.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	p := &Provider{
		config:      config,
		enabled:     config.Enabled,
		auditLogger: NewAuditLogger(nil),
	}

	if !config.Enabled {
		p.metrics = &Metrics{}
		return p, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceNameOrDefault(config.ServiceName)),
		semconv.ServiceVersion(config.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build otel resource: %w", err)
	}

	if err := p.setupMetrics(ctx, res); err != nil {
		return nil, err
	}
	if err := p.setupTracing(ctx, res); err != nil {
		return nil, err
	}

	return p, nil
}

func serviceNameOrDefault(name string) string {
	if name == "" {
		return "mcp-coda"
	}
	return name
}

func (p *Provider) setupMetrics(ctx context.Context, res *resource.Resource) error {
	var reader sdkmetric.Reader

	switch p.config.MetricsExporter {
	case "otlp":
		opts := []otlpmetrichttp.Option{}
		if p.config.OTLPEndpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpointURL(p.config.OTLPEndpoint))
		}
		if p.config.OTLPInsecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return fmt.Errorf("failed to create otlp metric exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(DefaultMetricInterval))

	case "stdout":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(DefaultMetricInterval))

	default: // prometheus
		p.promRegistry = prometheus.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(p.promRegistry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		reader = exporter
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(p.meterProvider)

	meter := p.meterProvider.Meter(TracerName)
	metrics, err := NewMetrics(meter, false)
	if err != nil {
		return err
	}
	p.metrics = metrics
	return nil
}

func (p *Provider) setupTracing(ctx context.Context, res *resource.Resource) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch p.config.TracingExporter {
	case "otlp":
		opts := []otlptracehttp.Option{}
		if p.config.OTLPEndpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpointURL(p.config.OTLPEndpoint))
		}
		if p.config.OTLPInsecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return fmt.Errorf("failed to create otlp trace exporter: %w", err)
		}

	case "stdout":
		exporter, err = stdouttrace.New()
		if err != nil {
			return fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}

	default: // "none"
		return nil
	}

	p.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sdktrace.TraceIDRatioBased(p.config.TraceSamplingRate),
		)),
	)
	otel.SetTracerProvider(p.tracerProvider)
	return nil
}

// Enabled reports whether instrumentation is active.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Config returns the configuration the provider was built from.
func (p *Provider) Config() Config {
	return p.config
}

// Metrics returns the metrics recorder. Never nil; on a disabled provider
// every recording method is a no-op.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// AuditLogger returns the audit logger for tool invocations.
func (p *Provider) AuditLogger() *AuditLogger {
	return p.auditLogger
}

// SetAuditLogger replaces the audit logger, e.g. to direct audit records to
// a dedicated output.
func (p *Provider) SetAuditLogger(al *AuditLogger) {
	if al != nil {
		p.auditLogger = al
	}
}

// PrometheusHandler returns an HTTP handler serving the Prometheus scrape
// endpoint, or nil when the prometheus exporter is not active.
func (p *Provider) PrometheusHandler() http.Handler {
	if p.promRegistry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.promRegistry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the metric and trace pipelines.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
