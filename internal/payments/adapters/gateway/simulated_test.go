package gateway_test

import (
	"context"
	"testing"
	"time"

	"github.com/dejobratic/storefront/internal/money"
	"github.com/dejobratic/storefront/internal/payments/adapters/gateway"
)

func TestSimulated_Charge(t *testing.T) {
	fixedNow := func() time.Time {
		return time.UnixMilli(1700000000000)
	}

	t.Run("approves a charge under the success rate", func(t *testing.T) {
		g := gateway.NewDeterministic(0.9, fixedNow, func() float64 { return 0.5 })

		result, err := g.Charge(context.Background(), money.Cents(2757), "credit_card")

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !result.Succeeded {
			t.Fatal("expected charge to succeed")
		}
		if result.TransactionID != "TX-1700000000000" {
			t.Errorf("unexpected transaction id %s", result.TransactionID)
		}
		if result.ReceiptURL != "https://receipt.example.com/TX-1700000000000" {
			t.Errorf("unexpected receipt url %s", result.ReceiptURL)
		}
		if result.Details["paymentMethod"] != "credit_card" {
			t.Errorf("expected payment method in details, got %v", result.Details)
		}
	})

	t.Run("declines a charge at or over the success rate", func(t *testing.T) {
		g := gateway.NewDeterministic(0.9, fixedNow, func() float64 { return 0.95 })

		result, err := g.Charge(context.Background(), money.Cents(2757), "credit_card")

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.Succeeded {
			t.Fatal("expected charge to fail")
		}
		if result.ErrorMessage == "" {
			t.Error("expected an error message on decline")
		}
	})

	t.Run("declines everything at rate zero", func(t *testing.T) {
		g := gateway.NewSimulated(0)

		for i := 0; i < 10; i++ {
			result, err := g.Charge(context.Background(), money.Cents(100), "credit_card")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if result.Succeeded {
				t.Fatal("expected every charge to fail at rate 0")
			}
		}
	})

	t.Run("respects a cancelled context", func(t *testing.T) {
		g := gateway.NewSimulated(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := g.Charge(ctx, money.Cents(100), "credit_card")

		if err == nil {
			t.Fatal("expected context error")
		}
	})
}
