// internal/common/observability/metrics.go
package observability

import (
	"context"
	"errors"
	"time"

	"cloud-api-console/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter and tracer providers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	taskCounter    otelmetric.Int64Counter
	taskDuration   otelmetric.Float64Histogram
}

// Options configures New.
type Options struct {
	ServiceName    string
	JaegerEndpoint string
	// DisableMetrics skips the meter provider; RecordTask becomes a no-op.
	DisableMetrics bool
}

// New installs global providers. Metrics go through the Prometheus exporter and
// show up on /metrics; spans are exported to Jaeger only when an endpoint is set.
// Setup failures degrade to no-op instruments.
func New(opts Options, log logger.Logger) *Observability {
	o := &Observability{}
	res := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))

	if opts.DisableMetrics {
		log.Info("metrics disabled", nil)
	} else if exporter, err := prometheus.New(); err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
		otel.SetMeterProvider(o.meterProvider)

		meter := o.meterProvider.Meter(opts.ServiceName)
		o.taskCounter, _ = meter.Int64Counter(
			"tasks.processed",
			otelmetric.WithDescription("Number of task requests processed"),
		)
		o.taskDuration, _ = meter.Float64Histogram(
			"tasks.duration",
			otelmetric.WithDescription("Task processing duration"),
			otelmetric.WithUnit("ms"),
		)
	}

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if opts.JaegerEndpoint != "" {
		jexp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(opts.JaegerEndpoint)))
		if err != nil {
			log.Warn("failed to create jaeger exporter", map[string]interface{}{"error": err.Error()})
		} else {
			tpOpts = append(tpOpts, sdktrace.WithBatcher(jexp))
		}
	}
	o.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(o.tracerProvider)
	o.tracer = o.tracerProvider.Tracer(opts.ServiceName)

	return o
}

// StartSpan starts a span on the service tracer.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return otel.Tracer("").Start(ctx, name, trace.WithAttributes(attrs...))
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordTask records one finished task request.
func (o *Observability) RecordTask(ctx context.Context, taskType, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	)
	if o.taskCounter != nil {
		o.taskCounter.Add(ctx, 1, attrs)
	}
	if o.taskDuration != nil {
		o.taskDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// Shutdown flushes both providers.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
