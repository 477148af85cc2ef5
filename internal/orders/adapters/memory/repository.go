package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/orders/domain"
)

// Repository is an in-memory order store for tests and local development.
type Repository struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	seq     map[string]int
	nextSeq int
}

func NewRepository() *Repository {
	return &Repository{
		orders: make(map[string]*domain.Order),
		seq:    make(map[string]int),
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return apperr.Conflict("order %q already exists", order.ID)
	}
	for _, existing := range r.orders {
		if existing.OrderNumber == order.OrderNumber {
			return apperr.Conflict("order number %q already exists", order.OrderNumber)
		}
	}

	clone := cloneOrder(order)
	r.orders[order.ID] = clone
	r.nextSeq++
	r.seq[order.ID] = r.nextSeq
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order %q not found", id)
	}
	return cloneOrder(order), nil
}

func (r *Repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return cloneOrder(order), nil
		}
	}
	return nil, apperr.NotFound("order with number %q not found", orderNumber)
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, *cloneOrder(order))
		}
	}
	r.sortNewestFirst(result)
	return result, nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *cloneOrder(order))
	}
	r.sortNewestFirst(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order %q not found", id)
	}
	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	order.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order %q not found", id)
	}
	order.PaymentStatus = status
	if paymentID != "" {
		order.PaymentID = paymentID
	}
	order.UpdatedAt = time.Now().UTC()
	return nil
}

// sortNewestFirst orders by creation time, falling back to insertion order
// when timestamps collide. Callers must hold at least the read lock.
func (r *Repository) sortNewestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return r.seq[orders[i].ID] > r.seq[orders[j].ID]
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
