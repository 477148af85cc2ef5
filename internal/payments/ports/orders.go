package ports

import (
	"context"

	ordersdomain "github.com/dejobratic/storefront/internal/orders/domain"
)

// OrderWorkflow is the slice of the order service the payment processor
// needs: the order being settled and the hook to flip its payment status.
type OrderWorkflow interface {
	GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, to ordersdomain.PaymentStatus, paymentID string) (*ordersdomain.Order, error)
}
