package observe

import (
	"context"
	"errors"
	"testing"

	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestOpMeta_SpanName verifies deterministic span naming.
func TestOpMeta_SpanName(t *testing.T) {
	meta := OpMeta{Name: "download_dataset", Resource: "datasets"}
	if got := meta.SpanName(); got != "op.invoke.download_dataset" {
		t.Errorf("SpanName() = %q, want op.invoke.download_dataset", got)
	}
}

// TestTracer_StartEndSpan verifies span attributes and error recording.
func TestTracer_StartEndSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	tracer := NewTracer(tp.Tracer("test"))
	meta := OpMeta{Name: "list_competitions", Resource: "competitions"}

	// Successful span
	_, span := tracer.StartSpan(context.Background(), meta)
	tracer.EndSpan(span, nil)

	// Failed span
	_, span = tracer.StartSpan(context.Background(), meta)
	tracer.EndSpan(span, errors.New("remote failure"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 ended spans, got %d", len(spans))
	}

	if spans[0].Name() != "op.invoke.list_competitions" {
		t.Errorf("span name = %q", spans[0].Name())
	}
	if spans[0].Status().Code != otelcodes.Ok {
		t.Errorf("successful span status = %v, want Ok", spans[0].Status().Code)
	}
	if spans[1].Status().Code != otelcodes.Error {
		t.Errorf("failed span status = %v, want Error", spans[1].Status().Code)
	}
	if len(spans[1].Events()) == 0 {
		t.Error("failed span should record the error event")
	}
}

// TestNoopTracer verifies the noop tracer produces usable spans.
func TestNoopTracer(t *testing.T) {
	tracer := NewNoopTracer()
	_, span := tracer.StartSpan(context.Background(), OpMeta{Name: "list_models"})
	tracer.EndSpan(span, errors.New("ignored"))
}
