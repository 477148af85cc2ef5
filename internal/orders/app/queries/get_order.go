package queries

import (
	"context"
	"strings"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/orders/domain"
	"github.com/dejobratic/storefront/internal/orders/ports"
)

// GetOrderQuery retrieves an order by its ID.
type GetOrderQuery struct {
	OrderID string
}

// Validate ensures the query has valid parameters.
func (q GetOrderQuery) Validate() error {
	if strings.TrimSpace(q.OrderID) == "" {
		return apperr.InvalidArgument("order_id is required")
	}
	return nil
}

// GetOrderQueryHandler executes GetOrderQuery and returns the order if found.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderQueryHandler constructs a GetOrderQueryHandler.
func NewGetOrderQueryHandler(repo ports.OrderRepository) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo}
}

// Handle executes the query and retrieves the order.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.GetByID(ctx, query.OrderID)
}

// GetOrderByNumberQuery retrieves an order by its human-facing order number.
type GetOrderByNumberQuery struct {
	OrderNumber string
}

// Validate ensures the query has valid parameters.
func (q GetOrderByNumberQuery) Validate() error {
	if strings.TrimSpace(q.OrderNumber) == "" {
		return apperr.InvalidArgument("order_number is required")
	}
	return nil
}

// GetOrderByNumberQueryHandler executes GetOrderByNumberQuery.
type GetOrderByNumberQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderByNumberQueryHandler constructs a GetOrderByNumberQueryHandler.
func NewGetOrderByNumberQueryHandler(repo ports.OrderRepository) *GetOrderByNumberQueryHandler {
	return &GetOrderByNumberQueryHandler{repo: repo}
}

// Handle executes the query and retrieves the order.
func (h *GetOrderByNumberQueryHandler) Handle(ctx context.Context, query GetOrderByNumberQuery) (*domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.GetByOrderNumber(ctx, query.OrderNumber)
}
