package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	tracerProvider     *sdktrace.TracerProvider
	meter              otelmetric.Meter
	tracer             trace.Tracer
	submissionCounter  otelmetric.Int64Counter
	submissionDuration otelmetric.Float64Histogram
}

// Options tune the exporters. The zero value exports metrics to the default
// Prometheus registry and keeps spans in-process.
type Options struct {
	Registerer     promclient.Registerer
	JaegerEndpoint string
	SampleRatio    float64
}

func New(serviceName string, opts Options) *Observability {
	o := &Observability{}

	exporterOpts := []prometheus.Option{}
	if opts.Registerer != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(opts.Registerer))
	}

	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(o.meterProvider)

		o.meter = o.meterProvider.Meter(serviceName)
		o.submissionCounter, _ = o.meter.Int64Counter(
			"submissions_processed",
			otelmetric.WithDescription("Number of tool submissions processed"),
		)
		o.submissionDuration, _ = o.meter.Float64Histogram(
			"submission_duration",
			otelmetric.WithDescription("Tool submission duration"),
			otelmetric.WithUnit("ms"),
		)
	}

	tp, err := newTracerProvider(serviceName, opts)
	if err != nil {
		log.Printf("Failed to create tracer provider: %v", err)
	} else {
		o.tracerProvider = tp
		otel.SetTracerProvider(tp)
	}
	o.tracer = otel.Tracer(serviceName)

	return o
}

// StartSpan starts a span named after the tool dispatch.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := o.tracer
	if tracer == nil {
		tracer = otel.Tracer("tool-dashboard")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordSubmission(ctx context.Context, tool, status string) {
	if o.submissionCounter != nil {
		o.submissionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordDuration(ctx context.Context, tool string, duration time.Duration, status string) {
	if o.submissionDuration != nil {
		o.submissionDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
