package queries

import (
	"context"
	"strings"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/orders/domain"
	"github.com/dejobratic/storefront/internal/orders/ports"
)

const defaultRecentLimit = 20

// ListUserOrdersQuery retrieves a user's orders, newest first.
type ListUserOrdersQuery struct {
	UserID string
}

func (q ListUserOrdersQuery) Validate() error {
	if strings.TrimSpace(q.UserID) == "" {
		return apperr.InvalidArgument("user_id is required")
	}
	return nil
}

type ListUserOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListUserOrdersQueryHandler(repo ports.OrderRepository) *ListUserOrdersQueryHandler {
	return &ListUserOrdersQueryHandler{repo: repo}
}

func (h *ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.ListByUser(ctx, query.UserID)
}

// ListRecentOrdersQuery retrieves the most recent orders across all users.
type ListRecentOrdersQuery struct {
	Limit int
}

type ListRecentOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListRecentOrdersQueryHandler(repo ports.OrderRepository) *ListRecentOrdersQueryHandler {
	return &ListRecentOrdersQueryHandler{repo: repo}
}

func (h *ListRecentOrdersQueryHandler) Handle(ctx context.Context, query ListRecentOrdersQuery) ([]domain.Order, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return h.repo.ListRecent(ctx, limit)
}
