package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/orders/adapters/memory"
	"github.com/dejobratic/storefront/internal/orders/domain"
)

func order(id, number, userID string) *domain.Order {
	return &domain.Order{
		ID:          id,
		OrderNumber: number,
		UserID:      userID,
		Status:      domain.OrderPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRepository_Create(t *testing.T) {
	t.Run("rejects duplicate order numbers", func(t *testing.T) {
		repo := memory.NewRepository()

		if err := repo.Create(context.Background(), order("order-1", "ORD-AAAAAAAA", "user-1")); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		err := repo.Create(context.Background(), order("order-2", "ORD-AAAAAAAA", "user-1"))

		if !apperr.IsConflict(err) {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("stores a copy of the order", func(t *testing.T) {
		repo := memory.NewRepository()
		o := order("order-1", "ORD-AAAAAAAA", "user-1")
		o.Items = []domain.OrderItem{{ProductID: "prod-1", Quantity: 1}}

		if err := repo.Create(context.Background(), o); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		o.Items[0].Quantity = 99

		stored, err := repo.GetByID(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if stored.Items[0].Quantity != 1 {
			t.Errorf("expected stored quantity to be isolated from caller, got %d", stored.Items[0].Quantity)
		}
	})
}

func TestRepository_ListRecent(t *testing.T) {
	repo := memory.NewRepository()
	for i, id := range []string{"order-1", "order-2", "order-3"} {
		o := order(id, "ORD-0000000"+string(rune('A'+i)), "user-1")
		if err := repo.Create(context.Background(), o); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
	}

	orders, err := repo.ListRecent(context.Background(), 2)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "order-3" {
		t.Errorf("expected newest order first, got %s", orders[0].ID)
	}
}
