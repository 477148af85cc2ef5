package queries_test

import (
	"context"
	"testing"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/orders/app/queries"
	"github.com/dejobratic/storefront/internal/orders/domain"
)

type mockRepository struct {
	getByIDFn          func(ctx context.Context, id string) (*domain.Order, error)
	getByOrderNumberFn func(ctx context.Context, orderNumber string) (*domain.Order, error)
	listByUserFn       func(ctx context.Context, userID string) ([]domain.Order, error)
	listRecentFn       func(ctx context.Context, limit int) ([]domain.Order, error)
}

func (m *mockRepository) Create(ctx context.Context, order *domain.Order) error { return nil }

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if m.getByOrderNumberFn != nil {
		return m.getByOrderNumberFn(ctx, orderNumber)
	}
	return nil, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingNumber string) error {
	return nil
}

func (m *mockRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, paymentID string) error {
	return nil
}

func TestGetOrderQuery(t *testing.T) {
	t.Run("returns order by id", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
				return &domain.Order{ID: id, OrderNumber: "ORD-0A1B2C3D"}, nil
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		order, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "order-1"})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.ID != "order-1" {
			t.Errorf("expected order-1, got %s", order.ID)
		}
	})

	t.Run("rejects blank id", func(t *testing.T) {
		handler := queries.NewGetOrderQueryHandler(&mockRepository{})

		_, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "  "})

		if !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
				return nil, apperr.NotFound("order %q not found", id)
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		_, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "missing"})

		if !apperr.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestGetOrderByNumberQuery(t *testing.T) {
	t.Run("returns order by number", func(t *testing.T) {
		repo := &mockRepository{
			getByOrderNumberFn: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
				return &domain.Order{ID: "order-1", OrderNumber: orderNumber}, nil
			},
		}
		handler := queries.NewGetOrderByNumberQueryHandler(repo)

		order, err := handler.Handle(context.Background(), queries.GetOrderByNumberQuery{OrderNumber: "ORD-0A1B2C3D"})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.OrderNumber != "ORD-0A1B2C3D" {
			t.Errorf("unexpected order number %s", order.OrderNumber)
		}
	})

	t.Run("rejects blank number", func(t *testing.T) {
		handler := queries.NewGetOrderByNumberQueryHandler(&mockRepository{})

		_, err := handler.Handle(context.Background(), queries.GetOrderByNumberQuery{})

		if !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})
}

func TestListQueries(t *testing.T) {
	t.Run("lists a user's orders", func(t *testing.T) {
		repo := &mockRepository{
			listByUserFn: func(ctx context.Context, userID string) ([]domain.Order, error) {
				return []domain.Order{{ID: "order-2"}, {ID: "order-1"}}, nil
			},
		}
		handler := queries.NewListUserOrdersQueryHandler(repo)

		orders, err := handler.Handle(context.Background(), queries.ListUserOrdersQuery{UserID: "user-1"})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(orders) != 2 {
			t.Errorf("expected 2 orders, got %d", len(orders))
		}
	})

	t.Run("rejects blank user id", func(t *testing.T) {
		handler := queries.NewListUserOrdersQueryHandler(&mockRepository{})

		_, err := handler.Handle(context.Background(), queries.ListUserOrdersQuery{})

		if !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("applies the default recent limit", func(t *testing.T) {
		var gotLimit int
		repo := &mockRepository{
			listRecentFn: func(ctx context.Context, limit int) ([]domain.Order, error) {
				gotLimit = limit
				return nil, nil
			},
		}
		handler := queries.NewListRecentOrdersQueryHandler(repo)

		if _, err := handler.Handle(context.Background(), queries.ListRecentOrdersQuery{}); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if gotLimit != 20 {
			t.Errorf("expected default limit 20, got %d", gotLimit)
		}
	})
}
