package loader

import (
	"context"

	"go.trai.ch/waypoint/internal/core/ports"
)

type options struct {
	logger      ports.Logger
	tracer      ports.Tracer
	recorder    Recorder
	development bool
}

func defaultOptions() options {
	return options{
		logger:   nopLogger{},
		tracer:   nopTracer{},
		recorder: nopRecorder{},
	}
}

// Option configures a Cache.
type Option func(*options)

// WithLogger sets the logger used for development diagnostics.
func WithLogger(l ports.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDevelopment enables logging of load failures.
func WithDevelopment(enabled bool) Option {
	return func(o *options) {
		o.development = enabled
	}
}

// WithTracer sets the tracer wrapped around every load.
func WithTracer(t ports.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithRecorder sets the recorder notified of hits, misses and failures.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}

type nopRecorder struct{}

func (nopRecorder) Hit()     {}
func (nopRecorder) Miss()    {}
func (nopRecorder) Failure() {}
