package ports

import (
	"context"

	"github.com/dejobratic/storefront/internal/orders/domain"
)

// OrderRepository persists orders in the document store.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber string) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, paymentID string) error
}
