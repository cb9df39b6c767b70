package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/waypoint/internal/core/ports"
)

// subjectKeys are the span attributes that name what an operation works on.
var subjectKeys = []string{"key", "quest"}

// Bridge implements sdktrace.SpanProcessor and forwards span lifecycles to a
// ports.Activity, so render hosts can react when a load settles.
type Bridge struct {
	activity ports.Activity
}

// NewBridge returns a new Bridge.
func NewBridge(activity ports.Activity) *Bridge {
	return &Bridge{activity: activity}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.activity == nil || !s.SpanContext().IsValid() {
		return
	}
	b.activity.OnStart(s.Name(), subject(s))
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.activity == nil || !s.SpanContext().IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "operation failed"
		}
		err = errors.New(desc)
	}

	b.activity.OnEnd(s.Name(), subject(s), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func subject(s sdktrace.ReadOnlySpan) string {
	for _, want := range subjectKeys {
		for _, kv := range s.Attributes() {
			if string(kv.Key) == want {
				return kv.Value.Emit()
			}
		}
	}
	return ""
}
