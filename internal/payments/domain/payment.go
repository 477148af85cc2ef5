package domain

import (
	"time"

	"github.com/dejobratic/storefront/internal/money"
)

// Status is the settlement state of a payment record.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

// Payment records one settlement attempt for an order. At most one payment
// exists per order; the store enforces it with a unique index on orderId.
type Payment struct {
	ID            string         `bson:"_id" json:"id"`
	OrderID       string         `bson:"orderId" json:"orderId"`
	UserID        string         `bson:"userId" json:"userId"`
	Amount        money.Cents    `bson:"amount" json:"amount"`
	Currency      string         `bson:"currency" json:"currency"`
	Status        Status         `bson:"status" json:"status"`
	PaymentMethod string         `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string         `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	ReceiptURL    string         `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`
	Details       map[string]any `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	ErrorMessage  string         `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Succeeded reports whether the settlement attempt completed.
func (p *Payment) Succeeded() bool {
	return p.Status == StatusCompleted
}
