package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/events"
	"github.com/dejobratic/storefront/internal/inventory"
	"github.com/dejobratic/storefront/internal/money"
	"github.com/dejobratic/storefront/internal/orders/domain"
	"github.com/dejobratic/storefront/internal/orders/ports"
	"github.com/google/uuid"
)

// ItemInput is a requested order line: the snapshot is taken from the catalog
// at handling time, never trusted from the caller.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderCommand struct {
	UserID          string
	Items           []ItemInput
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	PaymentMethod   string
	Notes           string
	Discount        money.Cents
}

func (c CreateOrderCommand) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return apperr.InvalidArgument("user_id is required")
	}
	if len(c.Items) == 0 {
		return apperr.InvalidArgument("order must have at least one item")
	}
	for _, item := range c.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return apperr.InvalidArgument("every order item needs a product_id")
		}
		if item.Quantity < 1 {
			return apperr.InvalidArgument("quantity for product %q must be at least 1", item.ProductID)
		}
	}
	if c.Discount < 0 {
		return apperr.InvalidArgument("discount cannot be negative")
	}
	return nil
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

// CreateOrderCommandHandler runs checkout: price from catalog snapshots,
// decrement stock, then persist. Stock moves before the order document is
// written so two concurrent checkouts cannot both claim the last unit; a
// failed persist puts the stock back.
type CreateOrderCommandHandler struct {
	repo     ports.OrderRepository
	products ports.ProductReader
	stock    ports.StockAdjuster
	events   events.Bus
	logger   *slog.Logger
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	products ports.ProductReader,
	stock ports.StockAdjuster,
	bus events.Bus,
	logger *slog.Logger,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:     repo,
		products: products,
		stock:    stock,
		events:   bus,
		logger:   logger,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, lines, err := h.snapshotItems(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}

	if err := h.stock.CheckAvailability(ctx, lines); err != nil {
		return nil, err
	}

	orderNumber, err := generateOrderNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     orderNumber,
		UserID:          cmd.UserID,
		Items:           items,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   cmd.PaymentMethod,
		ShippingAddress: cmd.ShippingAddress,
		BillingAddress:  cmd.BillingAddress,
		Notes:           cmd.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.CalculateTotals(cmd.Discount)

	if err := h.stock.Decrement(ctx, lines); err != nil {
		if errors.Is(err, inventory.ErrUnreconciled) {
			h.logger.ErrorContext(ctx, "checkout aborted with stock left unreconciled",
				"order_id", order.ID,
				"error", err,
			)
			if pubErr := h.events.PublishStockReconciliationNeeded(ctx, order.ID, err.Error()); pubErr != nil {
				h.logger.ErrorContext(ctx, "failed to flag order for stock reconciliation",
					"order_id", order.ID,
					"error", pubErr,
				)
			}
		}
		return nil, err
	}

	if err := h.repo.Create(ctx, &order); err != nil {
		h.compensate(ctx, order.ID, lines)
		return nil, err
	}

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		h.logger.WarnContext(ctx, "order saved but event publish failed",
			"order_id", order.ID,
			"error", err,
		)
	}

	return &order, nil
}

// snapshotItems resolves the requested lines against the catalog and copies
// the fields that must survive later product edits.
func (h *CreateOrderCommandHandler) snapshotItems(ctx context.Context, inputs []ItemInput) ([]domain.OrderItem, []inventory.Line, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}

	products, err := h.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}

	items := make([]domain.OrderItem, 0, len(inputs))
	lines := make([]inventory.Line, 0, len(inputs))
	for _, in := range inputs {
		idx, ok := byID[in.ProductID]
		if !ok {
			return nil, nil, apperr.NotFound("product %q not found", in.ProductID)
		}
		p := products[idx]
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			ImageURL:    p.PrimaryImageURL(),
			Unit:        p.Unit,
			Price:       p.EffectivePrice(),
			Quantity:    in.Quantity,
		})
		lines = append(lines, inventory.Line{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	return items, lines, nil
}

// compensate restores stock after a failed persist. If the restore also
// fails, flag the order for reconciliation so the discrepancy is not lost.
func (h *CreateOrderCommandHandler) compensate(ctx context.Context, orderID string, lines []inventory.Line) {
	if err := h.stock.Increment(ctx, lines); err != nil {
		h.logger.ErrorContext(ctx, "stock compensation failed after persist error",
			"order_id", orderID,
			"error", err,
		)
		if pubErr := h.events.PublishStockReconciliationNeeded(ctx, orderID, err.Error()); pubErr != nil {
			h.logger.ErrorContext(ctx, "failed to flag order for stock reconciliation",
				"order_id", orderID,
				"error", pubErr,
			)
		}
	}
}

func generateOrderNumber() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return "ORD-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
