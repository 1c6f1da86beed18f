package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTracerProvider exports spans to Jaeger when an endpoint is configured.
// Without one, spans are sampled but never leave the process.
func newTracerProvider(serviceName string, opts Options) (*sdktrace.TracerProvider, error) {
	ratio := opts.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}

	if opts.JaegerEndpoint != "" {
		exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(opts.JaegerEndpoint)))
		if err != nil {
			return nil, err
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(providerOpts...), nil
}
