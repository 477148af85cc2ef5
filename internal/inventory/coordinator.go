// Package inventory gates order creation on stock sufficiency and applies
// stock changes. Every decrement is a compare-and-swap against the product
// version observed at read time, so no write can land on a stale read.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/catalog/ports"
)

// ErrUnreconciled reports that a failed decrement could not restore the stock
// it had already taken. Callers must surface the discrepancy for
// reconciliation instead of swallowing it.
var ErrUnreconciled = errors.New("stock left unreconciled")

// Line identifies a quantity of one product.
type Line struct {
	ProductID string
	Quantity  int
}

type Coordinator struct {
	products ports.ProductRepository
	retries  int
	logger   *slog.Logger
}

func NewCoordinator(products ports.ProductRepository, retries int, logger *slog.Logger) *Coordinator {
	if retries < 1 {
		retries = 1
	}
	return &Coordinator{products: products, retries: retries, logger: logger}
}

// CheckAvailability verifies current stock covers every line.
func (c *Coordinator) CheckAvailability(ctx context.Context, lines []Line) error {
	for _, line := range lines {
		product, err := c.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product.Stock < line.Quantity {
			return apperr.InvalidArgument("insufficient stock for %s", product.Name)
		}
	}
	return nil
}

// Decrement applies stock reductions line by line. Each line re-reads the
// product and compare-and-swaps the new stock, retrying on version conflicts
// up to the configured budget; exhaustion surfaces as Conflict. A failure
// partway through puts the already-decremented lines back, so the whole call
// either applies every line or none; if that restore itself fails the error
// wraps ErrUnreconciled.
func (c *Coordinator) Decrement(ctx context.Context, lines []Line) error {
	for i, line := range lines {
		err := c.adjust(ctx, line.ProductID, -line.Quantity)
		if err == nil {
			continue
		}

		if restoreErr := c.Increment(ctx, lines[:i]); restoreErr != nil {
			c.logger.ErrorContext(ctx, "failed to restore stock after partial decrement",
				"failed_product_id", line.ProductID,
				"error", restoreErr,
			)
			return fmt.Errorf("%w after partial decrement: %w", ErrUnreconciled, err)
		}
		return err
	}
	return nil
}

// Increment restores stock, compensating a decrement whose follow-up step
// failed, or returning stock for a cancelled order.
func (c *Coordinator) Increment(ctx context.Context, lines []Line) error {
	for _, line := range lines {
		if err := c.adjust(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) adjust(ctx context.Context, productID string, delta int) error {
	for attempt := 1; attempt <= c.retries; attempt++ {
		product, err := c.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		newStock := product.Stock + delta
		if newStock < 0 {
			return apperr.InvalidArgument("insufficient stock for %s", product.Name)
		}

		err = c.products.CompareAndSwapStock(ctx, productID, product.Version, newStock)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrStaleVersion) {
			return err
		}

		c.logger.DebugContext(ctx, "stock write lost the race, retrying",
			"product_id", productID,
			"attempt", attempt,
		)
	}

	return apperr.Conflict("stock update for product %q exhausted %d attempts", productID, c.retries)
}
