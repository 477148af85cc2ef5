package ports

import (
	"context"

	"github.com/dejobratic/storefront/internal/inventory"
)

// StockAdjuster moves stock in lockstep with order lifecycle changes.
type StockAdjuster interface {
	CheckAvailability(ctx context.Context, lines []inventory.Line) error
	Decrement(ctx context.Context, lines []inventory.Line) error
	Increment(ctx context.Context, lines []inventory.Line) error
}
