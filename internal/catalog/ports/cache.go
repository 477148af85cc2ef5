package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/storefront/internal/catalog/domain"
)

// ErrCacheMiss distinguishes an absent key from a cache failure.
var ErrCacheMiss = errors.New("cache miss")

// Semantic list keys. Entity cache keys are the product id.
const (
	CacheKeyFeatured       = "featured"
	CacheKeyCategoryPrefix = "category_"
)

// ProductCache is a TTL read cache over catalog queries, invalidated
// synchronously on every product write.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product domain.Product) error
	GetList(ctx context.Context, key string) ([]domain.Product, error)
	SetList(ctx context.Context, key string, products []domain.Product) error
	Invalidate(ctx context.Context, keys ...string) error
}
