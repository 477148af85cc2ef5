// Package memory provides an in-memory product store useful for local
// development and tests. Its compare-and-swap semantics match the document
// store adapter.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/catalog/domain"
	"github.com/dejobratic/storefront/internal/catalog/ports"
	"github.com/google/uuid"
)

type Repository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: make(map[string]domain.Product)}
}

// Seed inserts a product as-is, assigning a version if unset. Test helper.
func (r *Repository) Seed(product domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.Version == 0 {
		product.Version = 1
	}
	r.products[product.ID] = product
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product %q not found", id)
	}
	copied := product
	return &copied, nil
}

func (r *Repository) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []domain.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *Repository) ListFeatured(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []domain.Product
	for _, product := range r.products {
		if product.Featured && product.Active {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *Repository) ListByCategory(_ context.Context, categoryID string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []domain.Product
	for _, product := range r.products {
		if product.CategoryID == categoryID && product.Active {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *Repository) Create(_ context.Context, product domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.Version = 1
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = product

	copied := product
	return &copied, nil
}

func (r *Repository) Update(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperr.NotFound("product %q not found", product.ID)
	}

	product.Version = existing.Version
	product.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = product
	return nil
}

func (r *Repository) CompareAndSwapStock(_ context.Context, id string, expectedVersion int64, newStock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperr.NotFound("product %q not found", id)
	}
	if product.Version != expectedVersion {
		return ports.ErrStaleVersion
	}

	product.Stock = newStock
	product.Version++
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product
	return nil
}
