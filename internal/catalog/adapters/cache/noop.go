package cache

import (
	"context"

	"github.com/dejobratic/storefront/internal/catalog/domain"
	"github.com/dejobratic/storefront/internal/catalog/ports"
)

// Noop misses on every read and drops every write. Used when caching is
// disabled by configuration.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	return nil, ports.ErrCacheMiss
}

func (Noop) SetProduct(_ context.Context, _ domain.Product) error { return nil }

func (Noop) GetList(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, ports.ErrCacheMiss
}

func (Noop) SetList(_ context.Context, _ string, _ []domain.Product) error { return nil }

func (Noop) Invalidate(_ context.Context, _ ...string) error { return nil }
