package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Provider owns the SDK tracer provider installed for one process.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider installs an SDK tracer provider with the given span processors
// as the global provider.
func NewProvider(processors ...sdktrace.SpanProcessor) *Provider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp}
}

// Tracer returns a ports.Tracer backed by this provider.
func (p *Provider) Tracer() *OTelTracer {
	return NewOTelTracerFrom(p.tp, InstrumentationName)
}

// Register adds a span processor after construction.
func (p *Provider) Register(sp sdktrace.SpanProcessor) {
	p.tp.RegisterSpanProcessor(sp)
}

// Shutdown flushes and stops every processor.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
