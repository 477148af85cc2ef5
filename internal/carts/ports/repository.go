package ports

import (
	"context"

	cartdomain "github.com/dejobratic/storefront/internal/carts/domain"
	catalogdomain "github.com/dejobratic/storefront/internal/catalog/domain"
)

// CartRepository persists whole cart documents keyed by user.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*cartdomain.Cart, error)
	// Upsert writes the full cart document, creating it on first mutation.
	Upsert(ctx context.Context, cart *cartdomain.Cart) error
}

// ProductReader is the slice of the catalog the cart service needs: current
// product state for snapshots and stock validation. Reads bypass the catalog
// cache so stock checks see fresh values.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*catalogdomain.Product, error)
}
