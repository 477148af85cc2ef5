package ports

import (
	"context"

	"github.com/dejobratic/storefront/internal/payments/domain"
)

// PaymentRepository persists payment records. Create is conditional: the
// store's unique index on orderId makes a second create for the same order
// fail with a conflict.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	Update(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
}
