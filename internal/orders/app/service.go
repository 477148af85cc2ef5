package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/storefront/internal/events"
	"github.com/dejobratic/storefront/internal/inventory"
	"github.com/dejobratic/storefront/internal/money"
	"github.com/dejobratic/storefront/internal/orders/app/commands"
	"github.com/dejobratic/storefront/internal/orders/app/queries"
	"github.com/dejobratic/storefront/internal/orders/domain"
	"github.com/dejobratic/storefront/internal/orders/metrics"
	"github.com/dejobratic/storefront/internal/orders/ports"
)

// Service bundles order workflow use cases for the API.
type Service struct {
	repo    ports.OrderRepository
	stock   ports.StockAdjuster
	events  events.Bus
	logger  *slog.Logger
	metrics *metrics.Metrics

	createOrderHandler commands.CommandHandler
	getOrder           *queries.GetOrderQueryHandler
	getOrderByNumber   *queries.GetOrderByNumberQueryHandler
	listUserOrders     *queries.ListUserOrdersQueryHandler
	listRecentOrders   *queries.ListRecentOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	products ports.ProductReader,
	stock ports.StockAdjuster,
	bus events.Bus,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	coreHandler := commands.NewCreateOrderCommandHandler(repo, products, stock, bus, logger)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, m)

	return &Service{
		repo:               repo,
		stock:              stock,
		events:             bus,
		logger:             logger,
		metrics:            m,
		createOrderHandler: observableHandler,
		getOrder:           queries.NewGetOrderQueryHandler(repo),
		getOrderByNumber:   queries.NewGetOrderByNumberQueryHandler(repo),
		listUserOrders:     queries.NewListUserOrdersQueryHandler(repo),
		listRecentOrders:   queries.NewListRecentOrdersQueryHandler(repo),
	}
}

// CreateOrderInput captures the checkout payload.
type CreateOrderInput struct {
	UserID          string
	Items           []commands.ItemInput
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	PaymentMethod   string
	Notes           string
	Discount        money.Cents
}

// CreateOrder runs checkout and returns the persisted order.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	cmd := commands.CreateOrderCommand{
		UserID:          input.UserID,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		Discount:        input.Discount,
	}
	return s.createOrderHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// GetOrderByNumber retrieves an order by its order number.
func (s *Service) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.getOrderByNumber.Handle(ctx, queries.GetOrderByNumberQuery{OrderNumber: orderNumber})
}

// ListUserOrders returns a user's orders, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.listUserOrders.Handle(ctx, queries.ListUserOrdersQuery{UserID: userID})
}

// ListRecentOrders returns the most recent orders across all users.
func (s *Service) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.listRecentOrders.Handle(ctx, queries.ListRecentOrdersQuery{Limit: limit})
}

// UpdateStatus moves an order through its fulfillment lifecycle. Cancelling
// puts the order's stock back.
func (s *Service) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateOrderTransition(order.Status, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, to, trackingNumber); err != nil {
		return nil, err
	}
	s.metrics.RecordStatusChange(ctx, string(to))

	if to == domain.OrderCancelled {
		s.restoreStock(ctx, order)
	}

	order.Status = to
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	order.UpdatedAt = time.Now().UTC()

	s.logger.InfoContext(ctx, "order status updated",
		"order_id", id,
		"status", to,
	)

	return order, nil
}

// CancelOrder cancels a pending or processing order and restores its stock.
func (s *Service) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.UpdateStatus(ctx, id, domain.OrderCancelled, "")
}

// UpdatePaymentStatus records the outcome of a settlement attempt against
// the order and emits the matching event.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, to domain.PaymentStatus, paymentID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePaymentTransition(order.PaymentStatus, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, to, paymentID); err != nil {
		return nil, err
	}

	order.PaymentStatus = to
	if paymentID != "" {
		order.PaymentID = paymentID
	}
	order.UpdatedAt = time.Now().UTC()

	switch to {
	case domain.PaymentPaid:
		if err := s.events.PublishOrderPaid(ctx, id, paymentID); err != nil {
			s.logger.WarnContext(ctx, "failed to publish order paid event", "order_id", id, "error", err)
		}
	case domain.PaymentFailed:
		if err := s.events.PublishPaymentFailed(ctx, id, "settlement failed"); err != nil {
			s.logger.WarnContext(ctx, "failed to publish payment failed event", "order_id", id, "error", err)
		}
	}

	return order, nil
}

func (s *Service) restoreStock(ctx context.Context, order *domain.Order) {
	lines := make([]inventory.Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	if err := s.stock.Increment(ctx, lines); err != nil {
		s.logger.ErrorContext(ctx, "failed to restore stock for cancelled order",
			"order_id", order.ID,
			"error", err,
		)
		if pubErr := s.events.PublishStockReconciliationNeeded(ctx, order.ID, err.Error()); pubErr != nil {
			s.logger.ErrorContext(ctx, "failed to flag order for stock reconciliation",
				"order_id", order.ID,
				"error", pubErr,
			)
		}
	}
}
