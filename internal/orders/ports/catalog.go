package ports

import (
	"context"

	catalogdomain "github.com/dejobratic/storefront/internal/catalog/domain"
)

// ProductReader is the slice of the catalog the order workflow needs to
// snapshot product state at checkout. Reads bypass the catalog cache.
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]catalogdomain.Product, error)
}
