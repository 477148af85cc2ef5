package events

import (
	"context"
	"time"

	"github.com/dejobratic/storefront/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableBus wraps a Bus with tracing and publish metrics.
type ObservableBus struct {
	bus     Bus
	metrics *Metrics
}

func NewObservableBus(bus Bus, metrics *Metrics) *ObservableBus {
	return &ObservableBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	return e.publish(ctx, "order.created", func(ctx context.Context) error {
		return e.bus.PublishOrderCreated(ctx, orderID)
	}, attribute.String("order.id", orderID))
}

func (e *ObservableBus) PublishOrderPaid(ctx context.Context, orderID, paymentID string) error {
	return e.publish(ctx, "order.paid", func(ctx context.Context) error {
		return e.bus.PublishOrderPaid(ctx, orderID, paymentID)
	},
		attribute.String("order.id", orderID),
		attribute.String("payment.id", paymentID),
	)
}

func (e *ObservableBus) PublishPaymentFailed(ctx context.Context, orderID, reason string) error {
	return e.publish(ctx, "payment.failed", func(ctx context.Context) error {
		return e.bus.PublishPaymentFailed(ctx, orderID, reason)
	},
		attribute.String("order.id", orderID),
		attribute.String("failure.reason", reason),
	)
}

func (e *ObservableBus) PublishStockReconciliationNeeded(ctx context.Context, orderID, reason string) error {
	return e.publish(ctx, "stock.reconciliation_needed", func(ctx context.Context) error {
		return e.bus.PublishStockReconciliationNeeded(ctx, orderID, reason)
	},
		attribute.String("order.id", orderID),
		attribute.String("failure.reason", reason),
	)
}

func (e *ObservableBus) publish(ctx context.Context, topic string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.Publish")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.type", topic),
		attribute.String("topic", topic),
	)
	telemetry.AddSpanAttributes(span, attrs...)

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, topic, duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
