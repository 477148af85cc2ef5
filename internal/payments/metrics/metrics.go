package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	paymentsProcessedTotal metric.Int64Counter
	processingDuration     metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.paymentsProcessedTotal, err = meter.Int64Counter(
		"payments_processed_total",
		metric.WithDescription("Total number of payment settlement attempts"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payments_processed_total counter: %w", err)
	}

	m.processingDuration, err = meter.Float64Histogram(
		"payment_processing_duration_seconds",
		metric.WithDescription("Duration of payment settlement attempts"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payment_processing_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordPayment(ctx context.Context, status string, durationSeconds float64) {
	m.paymentsProcessedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.processingDuration.Record(ctx, durationSeconds)
}
