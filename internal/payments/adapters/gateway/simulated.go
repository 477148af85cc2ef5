package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dejobratic/storefront/internal/money"
	"github.com/dejobratic/storefront/internal/payments/ports"
)

// Simulated approves a configurable fraction of charges without talking to
// any external provider. It stands in for a real gateway in dev and tests.
type Simulated struct {
	successRate float64
	now         func() time.Time
	rand        func() float64
}

func NewSimulated(successRate float64) *Simulated {
	return &Simulated{
		successRate: successRate,
		now:         time.Now,
		rand:        rand.Float64,
	}
}

// NewDeterministic returns a simulated gateway with fixed clock and rolls,
// for tests that need a predictable outcome.
func NewDeterministic(successRate float64, now func() time.Time, roll func() float64) *Simulated {
	return &Simulated{
		successRate: successRate,
		now:         now,
		rand:        roll,
	}
}

func (g *Simulated) Charge(ctx context.Context, amount money.Cents, method string) (ports.ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.ChargeResult{}, err
	}

	if g.rand() >= g.successRate {
		return ports.ChargeResult{
			Succeeded:    false,
			ErrorMessage: "Payment processing failed. Please try again.",
		}, nil
	}

	txID := fmt.Sprintf("TX-%d", g.now().UnixMilli())
	return ports.ChargeResult{
		Succeeded:     true,
		TransactionID: txID,
		ReceiptURL:    "https://receipt.example.com/" + txID,
		Details: map[string]any{
			"paymentMethod":  method,
			"processingTime": "2.3 seconds",
		},
	}, nil
}
