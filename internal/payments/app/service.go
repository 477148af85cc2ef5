package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/money"
	ordersdomain "github.com/dejobratic/storefront/internal/orders/domain"
	"github.com/dejobratic/storefront/internal/payments/domain"
	"github.com/dejobratic/storefront/internal/payments/metrics"
	"github.com/dejobratic/storefront/internal/payments/ports"
	"github.com/dejobratic/storefront/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Service settles payments against orders.
type Service struct {
	repo    ports.PaymentRepository
	orders  ports.OrderWorkflow
	gateway ports.Gateway
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(
	repo ports.PaymentRepository,
	orders ports.OrderWorkflow,
	gateway ports.Gateway,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		orders:  orders,
		gateway: gateway,
		logger:  logger,
		metrics: m,
	}
}

// ProcessPaymentInput captures a settlement request.
type ProcessPaymentInput struct {
	OrderID       string
	UserID        string
	Amount        money.Cents
	Currency      string
	PaymentMethod string
}

func (in ProcessPaymentInput) validate() error {
	if strings.TrimSpace(in.OrderID) == "" {
		return apperr.InvalidArgument("order_id is required")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return apperr.InvalidArgument("payment_method is required")
	}
	if in.Amount <= 0 {
		return apperr.InvalidArgument("amount must be positive")
	}
	return nil
}

// ProcessPayment runs one settlement attempt for an order. The pending
// payment record is created before the gateway is called, and the unique
// per-order constraint in the repository guarantees a concurrent duplicate
// request cannot charge twice.
func (s *Service) ProcessPayment(ctx context.Context, input ProcessPaymentInput) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "PaymentService.ProcessPayment")
	defer span.End()

	start := time.Now()

	if err := input.validate(); err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	if input.Amount != order.Total {
		err := apperr.InvalidArgument("payment amount does not match order total")
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:            uuid.NewString(),
		OrderID:       input.OrderID,
		UserID:        input.UserID,
		Amount:        input.Amount,
		Currency:      currency,
		Status:        domain.StatusPending,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	result, err := s.gateway.Charge(ctx, payment.Amount, payment.PaymentMethod)
	if err != nil {
		payment.Status = domain.StatusFailed
		payment.ErrorMessage = err.Error()
		if updateErr := s.repo.Update(ctx, &payment); updateErr != nil {
			s.logger.ErrorContext(ctx, "failed to persist gateway failure",
				"payment_id", payment.ID,
				"error", updateErr,
			)
		}
		// The payment record is terminal FAILED, so the order must agree or
		// it stays PENDING forever behind the unique per-order constraint.
		s.flipOrderStatus(ctx, order.ID, &payment)
		s.metrics.RecordPayment(ctx, string(domain.StatusFailed), time.Since(start).Seconds())
		telemetry.RecordSpanError(span, err)
		return nil, apperr.Unavailable(err, "charge payment for order %q", input.OrderID)
	}

	if result.Succeeded {
		payment.Status = domain.StatusCompleted
		payment.TransactionID = result.TransactionID
		payment.ReceiptURL = result.ReceiptURL
		payment.Details = result.Details
	} else {
		payment.Status = domain.StatusFailed
		payment.ErrorMessage = result.ErrorMessage
	}

	if err := s.repo.Update(ctx, &payment); err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	s.flipOrderStatus(ctx, order.ID, &payment)

	s.metrics.RecordPayment(ctx, string(payment.Status), time.Since(start).Seconds())
	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", payment.ID),
		attribute.String("payment.status", string(payment.Status)),
		attribute.String("order.id", order.ID),
	)
	telemetry.SetSpanSuccess(span)

	s.logger.InfoContext(ctx, "payment processed",
		"payment_id", payment.ID,
		"order_id", order.ID,
		"status", payment.Status,
	)

	return &payment, nil
}

// flipOrderStatus propagates the settlement outcome to the order. The payment
// record is already persisted, so a failure here is logged rather than
// surfaced to the caller.
func (s *Service) flipOrderStatus(ctx context.Context, orderID string, payment *domain.Payment) {
	var target ordersdomain.PaymentStatus
	switch payment.Status {
	case domain.StatusCompleted:
		target = ordersdomain.PaymentPaid
	case domain.StatusFailed:
		target = ordersdomain.PaymentFailed
	default:
		return
	}

	if _, err := s.orders.UpdatePaymentStatus(ctx, orderID, target, payment.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to update order payment status",
			"order_id", orderID,
			"payment_id", payment.ID,
			"target_status", target,
			"error", err,
		)
	}
}

// GetPayment retrieves a payment by ID.
func (s *Service) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.InvalidArgument("payment_id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// GetPaymentByOrder retrieves the payment for an order.
func (s *Service) GetPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.InvalidArgument("order_id is required")
	}
	return s.repo.GetByOrderID(ctx, orderID)
}
