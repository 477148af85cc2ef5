package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installSpanRecorder swaps in a synchronous in-memory tracer provider for
// the duration of the test.
func installSpanRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exp := tracetest.NewInMemoryExporter()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	return exp
}

func TestStartSpan(t *testing.T) {
	exp := installSpanRecorder(t)

	ctx, span := StartSpan(context.Background(), "checkout.create_order")
	if !span.SpanContext().IsValid() {
		t.Error("expected a valid span context")
	}
	_ = ctx
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if spans[0].Name != "checkout.create_order" {
		t.Errorf("expected span name checkout.create_order, got %s", spans[0].Name)
	}
}

func TestRecordSpanError(t *testing.T) {
	exp := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "op")
	RecordSpanError(span, errors.New("stock unavailable"))
	span.End()

	got := exp.GetSpans()[0]
	if got.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status.Code)
	}
	if got.Status.Description != "stock unavailable" {
		t.Errorf("expected status description, got %q", got.Status.Description)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "exception" {
		t.Errorf("expected a single exception event, got %+v", got.Events)
	}
}

func TestSetSpanSuccess(t *testing.T) {
	exp := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "op")
	SetSpanSuccess(span)
	span.End()

	if got := exp.GetSpans()[0].Status.Code; got != codes.Ok {
		t.Errorf("expected ok status, got %v", got)
	}
}

func TestAddSpanAttributes(t *testing.T) {
	exp := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "op")
	AddSpanAttributes(span, attribute.String("order.number", "ORD-1A2B3C4D"))
	span.End()

	for _, attr := range exp.GetSpans()[0].Attributes {
		if attr.Key == "order.number" && attr.Value.AsString() == "ORD-1A2B3C4D" {
			return
		}
	}
	t.Error("expected order.number attribute on span")
}

func TestSpanHelpers_TolerateNilSpan(t *testing.T) {
	AddSpanAttributes(nil, attribute.Bool("ignored", true))
	RecordSpanError(nil, errors.New("ignored"))
	RecordSpanError(nil, nil)
	SetSpanSuccess(nil)
}
