//go:build integration

package mongo_test

import (
	"context"
	"testing"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/carts/adapters/mongo"
	"github.com/dejobratic/storefront/internal/carts/domain"
	"github.com/dejobratic/storefront/internal/docstore/doctest"
	"github.com/dejobratic/storefront/internal/money"
)

func TestRepository_GetByUserID_NotFound(t *testing.T) {
	db := doctest.SetupTestDB(t)
	repo := mongo.NewRepository(db)

	_, err := repo.GetByUserID(context.Background(), "nobody")

	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestRepository_UpsertRoundTrip(t *testing.T) {
	db := doctest.SetupTestDB(t)
	repo := mongo.NewRepository(db)
	ctx := context.Background()

	cart := &domain.Cart{
		UserID: "user-1",
		Items: []domain.CartItem{
			{ProductID: "prod-1", ProductName: "Ground Turmeric", Price: money.Cents(999), Quantity: 2},
		},
	}
	cart.RecalculateSubtotal()

	if err := repo.Upsert(ctx, cart); err != nil {
		t.Fatalf("failed to upsert cart: %v", err)
	}
	if cart.ID == "" {
		t.Fatal("expected generated cart id")
	}

	retrieved, err := repo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to retrieve cart: %v", err)
	}
	if len(retrieved.Items) != 1 || retrieved.Items[0].Quantity != 2 {
		t.Errorf("expected cart items to round-trip, got %+v", retrieved.Items)
	}
	if retrieved.Subtotal != money.Cents(1998) {
		t.Errorf("expected subtotal 1998, got %d", retrieved.Subtotal)
	}

	// Second write replaces the document in place.
	cart.Items[0].Quantity = 5
	cart.RecalculateSubtotal()
	if err := repo.Upsert(ctx, cart); err != nil {
		t.Fatalf("failed to upsert cart: %v", err)
	}

	updated, err := repo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to retrieve cart: %v", err)
	}
	if updated.ID != cart.ID {
		t.Errorf("expected stable cart id, got %s then %s", cart.ID, updated.ID)
	}
	if updated.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", updated.Items[0].Quantity)
	}
	if updated.Subtotal != money.Cents(4995) {
		t.Errorf("expected subtotal 4995, got %d", updated.Subtotal)
	}
}
