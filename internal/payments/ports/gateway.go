package ports

import (
	"context"

	"github.com/dejobratic/storefront/internal/money"
)

// ChargeResult is the gateway's verdict on a settlement attempt.
type ChargeResult struct {
	Succeeded     bool
	TransactionID string
	ReceiptURL    string
	Details       map[string]any
	ErrorMessage  string
}

// Gateway settles charges with an external payment provider.
type Gateway interface {
	Charge(ctx context.Context, amount money.Cents, method string) (ChargeResult, error)
}
