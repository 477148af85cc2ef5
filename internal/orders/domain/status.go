package domain

import (
	"github.com/dejobratic/storefront/internal/apperr"
)

// OrderStatus tracks the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

// PaymentStatus tracks the settlement lifecycle of an order's payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {OrderRefunded},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentPaid:    {PaymentRefunded},
}

// ValidateOrderTransition returns an invalid-argument error when an order
// cannot move from its current status to the target status.
func ValidateOrderTransition(from, to OrderStatus) error {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperr.InvalidArgument("order status cannot change from %s to %s", from, to)
}

// ValidatePaymentTransition returns an invalid-argument error when a payment
// status change is not allowed.
func ValidatePaymentTransition(from, to PaymentStatus) error {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperr.InvalidArgument("payment status cannot change from %s to %s", from, to)
}
