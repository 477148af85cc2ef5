package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/payments/domain"
)

// Repository is an in-memory payment store. It mirrors the document store's
// uniqueness guarantee on orderId so conflict behavior matches in tests.
type Repository struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
	byOrder  map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		payments: make(map[string]*domain.Payment),
		byOrder:  make(map[string]string),
	}
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[payment.OrderID]; exists {
		return apperr.Conflict("payment for order %q already exists", payment.OrderID)
	}

	clone := clonePayment(payment)
	r.payments[payment.ID] = clone
	r.byOrder[payment.OrderID] = payment.ID
	return nil
}

func (r *Repository) Update(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; !ok {
		return apperr.NotFound("payment %q not found", payment.ID)
	}

	payment.UpdatedAt = time.Now().UTC()
	r.payments[payment.ID] = clonePayment(payment)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, apperr.NotFound("payment %q not found", id)
	}
	return clonePayment(payment), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, apperr.NotFound("payment for order %q not found", orderID)
	}
	return clonePayment(r.payments[id]), nil
}

func clonePayment(payment *domain.Payment) *domain.Payment {
	clone := *payment
	if payment.Details != nil {
		clone.Details = make(map[string]any, len(payment.Details))
		for k, v := range payment.Details {
			clone.Details[k] = v
		}
	}
	return &clone
}
