package events

import (
	"context"
	"log/slog"
)

// NoopBus logs events without publishing them anywhere. Useful for local dev
// before wiring a broker.
type NoopBus struct{}

// NewNoopBus returns a new no-op event publisher.
func NewNoopBus() *NoopBus {
	return &NoopBus{}
}

func (n *NoopBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopBus) PublishOrderPaid(_ context.Context, orderID, paymentID string) error {
	slog.Debug("event::order_paid", "order_id", orderID, "payment_id", paymentID)
	return nil
}

func (n *NoopBus) PublishPaymentFailed(_ context.Context, orderID, reason string) error {
	slog.Debug("event::payment_failed", "order_id", orderID, "reason", reason)
	return nil
}

func (n *NoopBus) PublishStockReconciliationNeeded(_ context.Context, orderID, reason string) error {
	slog.Debug("event::stock_reconciliation_needed", "order_id", orderID, "reason", reason)
	return nil
}
