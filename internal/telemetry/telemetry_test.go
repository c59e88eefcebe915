package telemetry

import (
	"context"
	"testing"
)

func TestTracerWithoutSetup(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "noop")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("expected a no-op span before Setup")
	}
}

func TestHostname(t *testing.T) {
	if hostname() == "" {
		t.Error("hostname must never be empty")
	}
}
