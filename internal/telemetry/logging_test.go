package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_StampsSpanIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanID := trace.SpanID{0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11}
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "order created")

	entry := decodeLogLine(t, &buf)
	if entry["trace_id"] != traceID.String() {
		t.Errorf("expected trace_id %s, got %v", traceID.String(), entry["trace_id"])
	}
	if entry["span_id"] != spanID.String() {
		t.Errorf("expected span_id %s, got %v", spanID.String(), entry["span_id"])
	}
	if entry["msg"] != "order created" {
		t.Errorf("expected message, got %v", entry["msg"])
	}
}

func TestLogger_OmitsIdentityOutsideSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.InfoContext(context.Background(), "no span here")

	entry := decodeLogLine(t, &buf)
	if _, ok := entry["trace_id"]; ok {
		t.Error("expected no trace_id without an active span")
	}
	if _, ok := entry["span_id"]; ok {
		t.Error("expected no span_id without an active span")
	}
}

func TestLogger_HonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.Debug("too quiet")

	if buf.Len() != 0 {
		t.Errorf("expected debug record to be dropped, got %q", buf.String())
	}
}

func TestLogger_PreservesAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo).With("component", "orders")

	logger.WithGroup("request").Info("handled", "method", "POST")

	entry := decodeLogLine(t, &buf)
	if entry["component"] != "orders" {
		t.Errorf("expected component attr, got %v", entry["component"])
	}
	group, ok := entry["request"].(map[string]any)
	if !ok {
		t.Fatalf("expected request group, got %v", entry["request"])
	}
	if group["method"] != "POST" {
		t.Errorf("expected grouped method attr, got %v", group["method"])
	}
}
