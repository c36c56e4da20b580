package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/kafka"
	"github.com/incognitoworld123-dev/RationalART/models"
	"github.com/incognitoworld123-dev/RationalART/repository"
)

// OrderService is the ledger boundary: it persists finalized orders,
// decrements stock, and publishes order events.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	producer kafka.ProducerAPI
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, producer kafka.ProducerAPI, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// Finalize persists the order and decrements stock for every line, clamped
// at zero. The order total is recomputed from the snapshotted lines so the
// ledger never trusts a caller-supplied amount.
func (s *OrderService) Finalize(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	total := 0
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		total += order.Items[i].Price * order.Items[i].Quantity
	}
	order.TotalAmount = total

	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}

	lines := make(map[string]int, len(order.Items))
	for _, item := range order.Items {
		lines[item.ProductID] += item.Quantity
	}
	if err := s.products.DecrementStock(ctx, lines); err != nil {
		// The order is already on the ledger; stock drift is recoverable
		// from the order history, so log and continue.
		s.logger.Error("Stock decrement failed after finalize",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	s.publish(models.OrderEvent{
		Event:       "order.finalized",
		OrderID:     order.ID.String(),
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		PaymentMode: order.PaymentMode,
		Timestamp:   time.Now().UTC(),
	})

	s.logger.Info("Order finalized",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", order.UserID),
		zap.Int("total_amount", order.TotalAmount),
		zap.String("payment_mode", order.PaymentMode),
	)
	return nil
}

// Complete transitions an order PENDING -> COMPLETED (e.g. COD delivered).
func (s *OrderService) Complete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.MarkCompleted(ctx, id); err != nil {
		return err
	}
	s.publish(models.OrderEvent{
		Event:     "order.completed",
		OrderID:   id.String(),
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

// publish is best-effort: event delivery never fails an order.
func (s *OrderService) publish(event models.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.SendOrderEvent(event); err != nil {
		s.logger.Warn("Order event publish failed", zap.String("order_id", event.OrderID), zap.Error(err))
	}
}
