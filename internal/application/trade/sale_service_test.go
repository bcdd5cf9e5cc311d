package trade

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/domain/trade"
)

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id int64) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Sale, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Stats(ctx context.Context, startDate, endDate *time.Time) (*trade.SaleStats, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SaleStats), args.Error(1)
}

func validSaleParams() trade.NewSaleParams {
	return trade.NewSaleParams{
		CustomerName:     "Ana",
		CustomerLastName: "García",
		Email:            "ana@x.com",
		Address:          "Av. Siempre Viva 123",
		City:             "CDMX",
		PostalCode:       "06000",
		CardNumber:       "4242424242424242",
		Subtotal:         decimal.NewFromInt(100),
		Shipping:         decimal.NewFromInt(50),
		Total:            decimal.NewFromInt(150),
		Items:            []byte(`[{"id":1,"quantity":2}]`),
	}
}

func TestSaleCreateRetriesOrderNumberCollision(t *testing.T) {
	sales := new(MockSaleRepository)
	service := NewSaleService(sales, zap.NewNop())

	var seen []string
	sales.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seen = append(seen, args.Get(1).(*trade.Sale).OrderNumber)
		}).Return(shared.ErrAlreadyExists).Twice()
	sales.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sale := args.Get(1).(*trade.Sale)
			seen = append(seen, sale.OrderNumber)
			sale.ID = 1
		}).Return(nil).Once()

	sale, err := service.Create(context.Background(), validSaleParams())
	require.NoError(t, err)
	require.Len(t, seen, 3)
	assert.NotEqual(t, seen[0], seen[2], "colliding order number should be regenerated")
	assert.Equal(t, seen[2], sale.OrderNumber)
	assert.Regexp(t, `^ORD-\d+-\d{4}$`, sale.OrderNumber)
}

func TestSaleCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	sales := new(MockSaleRepository)
	service := NewSaleService(sales, zap.NewNop())

	sales.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	_, err := service.Create(context.Background(), validSaleParams())
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestChangeStatus(t *testing.T) {
	sales := new(MockSaleRepository)
	service := NewSaleService(sales, zap.NewNop())

	sale, err := trade.NewSale(validSaleParams())
	require.NoError(t, err)
	sale.ID = 7

	sales.On("FindByID", mock.Anything, int64(7)).Return(sale, nil)
	sales.On("Update", mock.Anything, sale).Return(nil)

	updated, err := service.ChangeStatus(context.Background(), 7, "processing")
	require.NoError(t, err)
	assert.Equal(t, trade.SaleStatusProcessing, updated.Status)

	_, err = service.ChangeStatus(context.Background(), 7, "not-a-status")
	assert.Error(t, err)
}

func TestChangeStatusFrozenWhenTerminal(t *testing.T) {
	sales := new(MockSaleRepository)
	service := NewSaleService(sales, zap.NewNop())

	sale, err := trade.NewSale(validSaleParams())
	require.NoError(t, err)
	sale.ID = 7
	require.NoError(t, sale.ChangeStatus(trade.SaleStatusCancelled))

	sales.On("FindByID", mock.Anything, int64(7)).Return(sale, nil)

	_, err = service.ChangeStatus(context.Background(), 7, "pending")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	sales.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
