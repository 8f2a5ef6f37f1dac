// Package tracing sets up OpenTelemetry tracing for analysis runs. Without
// an OTLP endpoint every span is a no-op.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used by every package
const TracerName = "github.com/dd0wney/cluso-graphreport"

// Config configures trace export
type Config struct {
	ServiceName string
	Version     string

	// OTLPEndpoint is an OTLP gRPC endpoint such as localhost:4317. Empty
	// disables export.
	OTLPEndpoint string

	// SampleRate is the fraction of runs traced, 0 to 1
	SampleRate float64
}

// Provider owns the SDK tracer provider when export is enabled
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// Init installs a global tracer provider exporting to cfg.OTLPEndpoint.
// With no endpoint it returns the global (no-op) tracer.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		return &Provider{tracer: otel.Tracer(TracerName)}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.SampleRate)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(TracerName),
	}, nil
}

// Sampler maps a sample rate onto an SDK sampler
func Sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the tracer to start spans with
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// StartRunSpan starts the root span of an analysis run
func StartRunSpan(ctx context.Context, tracer trace.Tracer, runID string, datasets int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "graphreport.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("graphreport.run_id", runID),
			attribute.Int("graphreport.datasets", datasets),
		),
	)
}

// StartDatasetSpan starts the span covering one dataset
func StartDatasetSpan(ctx context.Context, tracer trace.Tracer, name, kind, format string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "dataset."+name,
		trace.WithAttributes(
			attribute.String("graphreport.dataset", name),
			attribute.String("graphreport.kind", kind),
			attribute.String("graphreport.format", format),
		),
	)
}

// StartAlgorithmSpan starts the span of a single measure
func StartAlgorithmSpan(ctx context.Context, tracer trace.Tracer, algorithm string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "algorithm."+algorithm,
		trace.WithAttributes(attribute.String("graphreport.algorithm", algorithm)),
	)
}

// RecordGraphSize annotates a span with the loaded graph's size
func RecordGraphSize(span trace.Span, nodes, edges, skipped int) {
	span.SetAttributes(
		attribute.Int("graph.nodes", nodes),
		attribute.Int("graph.edges", edges),
		attribute.Int("graph.records_skipped", skipped),
	)
}

// RecordError marks span as failed when err is set
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
