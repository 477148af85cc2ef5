// Package events defines the fulfillment event bus published to by the order
// and payment workflows.
package events

import "context"

// Bus is the contract for publishing fulfillment lifecycle events.
type Bus interface {
	PublishOrderCreated(ctx context.Context, orderID string) error
	PublishOrderPaid(ctx context.Context, orderID, paymentID string) error
	PublishPaymentFailed(ctx context.Context, orderID, reason string) error
	// PublishStockReconciliationNeeded flags an order whose stock adjustment
	// and order write diverged; a reconciliation job consumes these.
	PublishStockReconciliationNeeded(ctx context.Context, orderID, reason string) error
}
