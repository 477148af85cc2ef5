// Package memory provides an in-memory cart store useful for local
// development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/carts/domain"
	"github.com/google/uuid"
)

type Repository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewRepository() *Repository {
	return &Repository{carts: make(map[string]domain.Cart)}
}

func (r *Repository) GetByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, apperr.NotFound("cart not found for user %q", userID)
	}

	copied := cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (r *Repository) Upsert(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	cart.UpdatedAt = time.Now().UTC()

	stored := *cart
	stored.Items = append([]domain.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = stored
	return nil
}
