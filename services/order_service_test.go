package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/models"
)

// --- Mock Repositories ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}
func (m *MockOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}
func (m *MockOrderRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) EnsureSeed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockProductRepository) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}
func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *MockProductRepository) Save(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	args := m.Called(ctx, id, stock)
	return args.Error(0)
}
func (m *MockProductRepository) DecrementStock(ctx context.Context, lines map[string]int) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) SendOrderEvent(event models.OrderEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestOrderFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("Recomputes the total from snapshotted lines", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockProducer := new(MockProducer)
		svc := NewOrderService(mockOrders, mockProducts, mockProducer, zap.NewNop())

		order := &models.Order{
			UserID:      "user-1",
			TotalAmount: 1, // caller-supplied amount must be ignored
			PaymentMode: string(models.PaymentModeCOD),
			Items: []models.OrderItem{
				{ProductID: "p1", Title: "The Atlas", Price: 999, Quantity: 2},
			},
		}

		mockOrders.On("Create", mock.Anything, order).Return(nil).Once()
		mockProducts.On("DecrementStock", mock.Anything, map[string]int{"p1": 2}).Return(nil).Once()
		mockProducer.On("SendOrderEvent", mock.MatchedBy(func(e models.OrderEvent) bool {
			return e.Event == "order.finalized" && e.TotalAmount == 1998
		})).Return(nil).Once()

		err := svc.Finalize(ctx, order)

		assert.NoError(t, err)
		assert.Equal(t, 1998, order.TotalAmount)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.NotEqual(t, uuid.Nil, order.ID)
		mockOrders.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("Stock decrement failure does not fail the order", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		svc := NewOrderService(mockOrders, mockProducts, nil, zap.NewNop())

		order := &models.Order{
			UserID: "user-1",
			Items:  []models.OrderItem{{ProductID: "p1", Price: 999, Quantity: 1}},
		}
		mockOrders.On("Create", mock.Anything, order).Return(nil).Once()
		mockProducts.On("DecrementStock", mock.Anything, mock.Anything).
			Return(errors.New("redis down")).Once()

		err := svc.Finalize(ctx, order)

		assert.NoError(t, err)
	})

	t.Run("Persist failure propagates", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		svc := NewOrderService(mockOrders, mockProducts, nil, zap.NewNop())

		order := &models.Order{UserID: "user-1"}
		mockOrders.On("Create", mock.Anything, order).Return(errors.New("db down")).Once()

		err := svc.Finalize(ctx, order)

		assert.Error(t, err)
		mockProducts.AssertNotCalled(t, "DecrementStock")
	})

	t.Run("Event publish failure is best-effort", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockProducer := new(MockProducer)
		svc := NewOrderService(mockOrders, mockProducts, mockProducer, zap.NewNop())

		order := &models.Order{
			UserID: "user-1",
			Items:  []models.OrderItem{{ProductID: "p1", Price: 999, Quantity: 1}},
		}
		mockOrders.On("Create", mock.Anything, order).Return(nil).Once()
		mockProducts.On("DecrementStock", mock.Anything, mock.Anything).Return(nil).Once()
		mockProducer.On("SendOrderEvent", mock.Anything).Return(errors.New("broker down")).Once()

		err := svc.Finalize(ctx, order)

		assert.NoError(t, err)
	})
}

func TestOrderComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks pending order completed and publishes", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducer := new(MockProducer)
		svc := NewOrderService(mockOrders, new(MockProductRepository), mockProducer, zap.NewNop())

		id := uuid.New()
		mockOrders.On("MarkCompleted", mock.Anything, id).Return(nil).Once()
		mockProducer.On("SendOrderEvent", mock.MatchedBy(func(e models.OrderEvent) bool {
			return e.Event == "order.completed" && e.OrderID == id.String()
		})).Return(nil).Once()

		assert.NoError(t, svc.Complete(ctx, id))
		mockProducer.AssertExpectations(t)
	})

	t.Run("Repository failure propagates without an event", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducer := new(MockProducer)
		svc := NewOrderService(mockOrders, new(MockProductRepository), mockProducer, zap.NewNop())

		id := uuid.New()
		mockOrders.On("MarkCompleted", mock.Anything, id).Return(errors.New("not pending")).Once()

		assert.Error(t, svc.Complete(ctx, id))
		mockProducer.AssertNotCalled(t, "SendOrderEvent")
	})
}
