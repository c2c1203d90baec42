package application

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/mes-platform/production-tracker/internal/domain"
	"github.com/mes-platform/production-tracker/pkg/logging"
)

// OrderService handles production order submission and lookups.
type OrderService struct {
	orders    domain.OrderRepository
	barcodes  domain.BarcodeRepository
	publisher EventPublisher
	logger    *logging.Logger
	now       func() time.Time
	serialNo  func() int
}

// NewOrderService creates an OrderService. publisher may be nil.
func NewOrderService(
	orders domain.OrderRepository,
	barcodes domain.BarcodeRepository,
	publisher EventPublisher,
	logger *logging.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		barcodes:  barcodes,
		publisher: publisher,
		logger:    logger.WithComponent("order-service"),
		now:       time.Now,
		serialNo: func() int {
			// 6 digit order reference.
			return 100000 + rand.IntN(900000)
		},
	}
}

// SubmitOrder validates and persists a new production order.
func (s *OrderService) SubmitOrder(ctx context.Context, params domain.OrderParams) (*domain.Order, error) {
	now := s.now().UTC()

	order, err := domain.NewOrder(params, s.serialNo(), now)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order submitted",
		"order_number", order.OrderNumber,
		"order_pairs", order.OrderPairs,
		"customer", order.Customer,
	)

	if s.publisher != nil {
		event := domain.OrderSubmittedEvent{Order: order, At: now}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Warn("publishing order event failed",
				"order_number", order.OrderNumber,
			)
		}
	}

	return order, nil
}

// ListOrders returns all orders.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.FindAll(ctx)
}

// GetOrder fetches an order by its number, accepting the unpadded form.
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	normalized, err := domain.NormalizeOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByNumber(ctx, normalized)
}

// GetOrderByBarcode resolves a unit barcode to its order and identity
// document.
func (s *OrderService) GetOrderByBarcode(ctx context.Context, barcodeNumber string) (*domain.Order, *domain.Barcode, error) {
	barcode, err := s.barcodes.FindByNumber(ctx, barcodeNumber)
	if err != nil {
		return nil, nil, err
	}

	order, err := s.orders.FindByNumber(ctx, barcode.OrderNumber)
	if err != nil {
		return nil, nil, err
	}
	return order, barcode, nil
}
