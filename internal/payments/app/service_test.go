package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/money"
	ordersdomain "github.com/dejobratic/storefront/internal/orders/domain"
	"github.com/dejobratic/storefront/internal/payments/adapters/memory"
	"github.com/dejobratic/storefront/internal/payments/app"
	"github.com/dejobratic/storefront/internal/payments/domain"
	"github.com/dejobratic/storefront/internal/payments/metrics"
	"github.com/dejobratic/storefront/internal/payments/ports"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type mockOrderWorkflow struct {
	getOrderFn            func(ctx context.Context, id string) (*ordersdomain.Order, error)
	updatePaymentStatusFn func(ctx context.Context, id string, to ordersdomain.PaymentStatus, paymentID string) (*ordersdomain.Order, error)

	mu            sync.Mutex
	statusUpdates []ordersdomain.PaymentStatus
}

func (m *mockOrderWorkflow) GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error) {
	if m.getOrderFn != nil {
		return m.getOrderFn(ctx, id)
	}
	return &ordersdomain.Order{ID: id, Total: money.Cents(2757), PaymentStatus: ordersdomain.PaymentPending}, nil
}

func (m *mockOrderWorkflow) UpdatePaymentStatus(ctx context.Context, id string, to ordersdomain.PaymentStatus, paymentID string) (*ordersdomain.Order, error) {
	m.mu.Lock()
	m.statusUpdates = append(m.statusUpdates, to)
	m.mu.Unlock()
	if m.updatePaymentStatusFn != nil {
		return m.updatePaymentStatusFn(ctx, id, to, paymentID)
	}
	return &ordersdomain.Order{ID: id, PaymentStatus: to}, nil
}

type stubGateway struct {
	result ports.ChargeResult
	err    error
}

func (g *stubGateway) Charge(ctx context.Context, amount money.Cents, method string) (ports.ChargeResult, error) {
	return g.result, g.err
}

func approvingGateway() *stubGateway {
	return &stubGateway{
		result: ports.ChargeResult{
			Succeeded:     true,
			TransactionID: "TX-1700000000000",
			ReceiptURL:    "https://receipt.example.com/TX-1700000000000",
			Details:       map[string]any{"paymentMethod": "credit_card"},
		},
	}
}

func newTestService(t *testing.T, orders *mockOrderWorkflow, gw ports.Gateway) (*app.Service, *memory.Repository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	meter := sdkmetric.NewMeterProvider().Meter("test")
	m, err := metrics.NewMetrics(meter)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	repo := memory.NewRepository()
	return app.NewService(repo, orders, gw, logger, m), repo
}

func validInput() app.ProcessPaymentInput {
	return app.ProcessPaymentInput{
		OrderID:       "order-1",
		UserID:        "user-1",
		Amount:        money.Cents(2757),
		PaymentMethod: "credit_card",
	}
}

func TestProcessPayment(t *testing.T) {
	t.Run("settles a successful charge", func(t *testing.T) {
		orders := &mockOrderWorkflow{}
		svc, repo := newTestService(t, orders, approvingGateway())

		payment, err := svc.ProcessPayment(context.Background(), validInput())

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if payment.Status != domain.StatusCompleted {
			t.Errorf("expected status %s, got %s", domain.StatusCompleted, payment.Status)
		}
		if payment.TransactionID != "TX-1700000000000" {
			t.Errorf("unexpected transaction id %s", payment.TransactionID)
		}
		if payment.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", payment.Currency)
		}

		stored, err := repo.GetByOrderID(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("expected stored payment, got: %v", err)
		}
		if stored.Status != domain.StatusCompleted {
			t.Errorf("expected persisted status %s, got %s", domain.StatusCompleted, stored.Status)
		}

		if len(orders.statusUpdates) != 1 || orders.statusUpdates[0] != ordersdomain.PaymentPaid {
			t.Errorf("expected order flipped to PAID, got %v", orders.statusUpdates)
		}
	})

	t.Run("records a declined charge and fails the order", func(t *testing.T) {
		orders := &mockOrderWorkflow{}
		gw := &stubGateway{
			result: ports.ChargeResult{Succeeded: false, ErrorMessage: "Payment processing failed. Please try again."},
		}
		svc, _ := newTestService(t, orders, gw)

		payment, err := svc.ProcessPayment(context.Background(), validInput())

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if payment.Status != domain.StatusFailed {
			t.Errorf("expected status %s, got %s", domain.StatusFailed, payment.Status)
		}
		if payment.ErrorMessage == "" {
			t.Error("expected an error message on the payment record")
		}

		if len(orders.statusUpdates) != 1 || orders.statusUpdates[0] != ordersdomain.PaymentFailed {
			t.Errorf("expected order flipped to FAILED, got %v", orders.statusUpdates)
		}
	})

	t.Run("rejects an amount one cent under the total", func(t *testing.T) {
		svc, _ := newTestService(t, &mockOrderWorkflow{}, approvingGateway())
		input := validInput()
		input.Amount = money.Cents(2756)

		_, err := svc.ProcessPayment(context.Background(), input)

		if !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("rejects an amount one cent over the total", func(t *testing.T) {
		svc, _ := newTestService(t, &mockOrderWorkflow{}, approvingGateway())
		input := validInput()
		input.Amount = money.Cents(2758)

		_, err := svc.ProcessPayment(context.Background(), input)

		if !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("returns not found for unknown order", func(t *testing.T) {
		orders := &mockOrderWorkflow{
			getOrderFn: func(ctx context.Context, id string) (*ordersdomain.Order, error) {
				return nil, apperr.NotFound("order %q not found", id)
			},
		}
		svc, _ := newTestService(t, orders, approvingGateway())

		_, err := svc.ProcessPayment(context.Background(), validInput())

		if !apperr.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("rejects a second payment for the same order", func(t *testing.T) {
		svc, _ := newTestService(t, &mockOrderWorkflow{}, approvingGateway())

		if _, err := svc.ProcessPayment(context.Background(), validInput()); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		_, err := svc.ProcessPayment(context.Background(), validInput())

		if !apperr.IsConflict(err) {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("concurrent duplicates settle exactly once", func(t *testing.T) {
		orders := &mockOrderWorkflow{}
		svc, repo := newTestService(t, orders, approvingGateway())

		const attempts = 8
		var wg sync.WaitGroup
		var mu sync.Mutex
		var successes, conflicts int

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.ProcessPayment(context.Background(), validInput())
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case apperr.IsConflict(err):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if successes != 1 {
			t.Errorf("expected exactly one success, got %d", successes)
		}
		if conflicts != attempts-1 {
			t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
		}

		if _, err := repo.GetByOrderID(context.Background(), "order-1"); err != nil {
			t.Errorf("expected a payment record, got: %v", err)
		}
	})

	t.Run("marks the payment and the order failed on gateway error", func(t *testing.T) {
		orders := &mockOrderWorkflow{}
		gw := &stubGateway{err: errors.New("gateway timeout")}
		svc, repo := newTestService(t, orders, gw)

		_, err := svc.ProcessPayment(context.Background(), validInput())

		if !apperr.IsUnavailable(err) {
			t.Errorf("expected unavailable, got %v", err)
		}

		stored, err := repo.GetByOrderID(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("expected stored payment, got: %v", err)
		}
		if stored.Status != domain.StatusFailed {
			t.Errorf("expected persisted status %s, got %s", domain.StatusFailed, stored.Status)
		}

		// The order must agree with its terminal payment record.
		if len(orders.statusUpdates) != 1 || orders.statusUpdates[0] != ordersdomain.PaymentFailed {
			t.Errorf("expected order flipped to FAILED, got %v", orders.statusUpdates)
		}
	})
}

func TestGetPayment(t *testing.T) {
	t.Run("fetches by id and by order", func(t *testing.T) {
		svc, _ := newTestService(t, &mockOrderWorkflow{}, approvingGateway())

		created, err := svc.ProcessPayment(context.Background(), validInput())
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		byID, err := svc.GetPayment(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if byID.ID != created.ID {
			t.Errorf("expected %s, got %s", created.ID, byID.ID)
		}

		byOrder, err := svc.GetPaymentByOrder(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if byOrder.ID != created.ID {
			t.Errorf("expected %s, got %s", created.ID, byOrder.ID)
		}
	})

	t.Run("rejects blank ids", func(t *testing.T) {
		svc, _ := newTestService(t, &mockOrderWorkflow{}, approvingGateway())

		if _, err := svc.GetPayment(context.Background(), ""); !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
		if _, err := svc.GetPaymentByOrder(context.Background(), ""); !apperr.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})
}
