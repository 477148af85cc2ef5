package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/storefront/internal/catalog/domain"
)

// ErrStaleVersion is returned by CompareAndSwapStock when the product changed
// since it was read; callers re-read and retry.
var ErrStaleVersion = errors.New("product version is stale")

// ProductRepository exposes the catalog reads and writes the services need.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs resolves a set of ids, splitting into store-sized batches.
	// Missing ids are skipped, not errors.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	// CompareAndSwapStock writes a new stock level only if the stored version
	// still equals expectedVersion, bumping the version on success.
	CompareAndSwapStock(ctx context.Context, id string, expectedVersion int64, newStock int) error
}
