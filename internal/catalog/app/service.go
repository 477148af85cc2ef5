package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dejobratic/storefront/internal/catalog/domain"
	"github.com/dejobratic/storefront/internal/catalog/ports"
)

// Service serves catalog reads through the TTL cache and keeps the cache
// coherent by invalidating on every write. Stock-sensitive callers (inventory,
// carts) bypass the cache and read the repository directly.
type Service struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	logger *slog.Logger
}

func NewService(repo ports.ProductRepository, cache ports.ProductCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// GetProduct returns a product, preferring the cache.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if product, err := s.cache.GetProduct(ctx, id); err == nil {
		return product, nil
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, *product); err != nil {
		s.logger.WarnContext(ctx, "product cache write failed", "product_id", id, "error", err)
	}

	return product, nil
}

// GetProducts resolves a set of product ids, uncached.
func (s *Service) GetProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.listCached(ctx, ports.CacheKeyFeatured, s.repo.ListFeatured)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.listCached(ctx, ports.CacheKeyCategoryPrefix+categoryID, func(ctx context.Context) ([]domain.Product, error) {
		return s.repo.ListByCategory(ctx, categoryID)
	})
}

func (s *Service) listCached(ctx context.Context, key string, load func(context.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	if products, err := s.cache.GetList(ctx, key); err == nil {
		return products, nil
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "product list cache read failed", "key", key, "error", err)
	}

	products, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetList(ctx, key, products); err != nil {
		s.logger.WarnContext(ctx, "product list cache write failed", "key", key, "error", err)
	}

	return products, nil
}

func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, *created)
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) error {
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}

	s.invalidate(ctx, product)
	return nil
}

// invalidate drops the entity key and every semantic key the product could
// appear under. Runs synchronously so readers never see a stale entry after a
// write has been acknowledged.
func (s *Service) invalidate(ctx context.Context, product domain.Product) {
	keys := []string{product.ID, ports.CacheKeyFeatured}
	if product.CategoryID != "" {
		keys = append(keys, ports.CacheKeyCategoryPrefix+product.CategoryID)
	}

	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "product cache invalidation failed", "product_id", product.ID, "error", err)
	}
}
