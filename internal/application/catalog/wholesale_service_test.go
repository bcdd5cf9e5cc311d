package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
)

func newWholesaleService(t *testing.T) (*WholesaleService, *MockWholesaleTierRepository, *MockProductRepository) {
	t.Helper()
	tiers := new(MockWholesaleTierRepository)
	products := new(MockProductRepository)
	return NewWholesaleService(tiers, products, zap.NewNop()), tiers, products
}

func tierFixture(t *testing.T, minQuantity int, unitPrice int64, discount *decimal.Decimal) catalog.WholesaleTier {
	t.Helper()
	tier, err := catalog.NewWholesaleTier(4, minQuantity, decimal.NewFromInt(unitPrice), discount)
	require.NoError(t, err)
	return *tier
}

func TestWholesaleCreateRequiresProduct(t *testing.T) {
	service, _, products := newWholesaleService(t)

	products.On("FindByID", mock.Anything, int64(4)).Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), WholesaleTierInput{
		ProductID:   4,
		MinQuantity: 10,
		UnitPrice:   decimal.NewFromInt(20),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWholesalePriceForPicksDeepestTier(t *testing.T) {
	service, tiers, products := newWholesaleService(t)

	product, err := catalog.NewProduct("Llavero", "Llaveros", 1, 2, 3,
		decimal.NewFromInt(10), decimal.NewFromInt(25))
	require.NoError(t, err)
	product.ID = 4

	extra := decimal.NewFromInt(10)
	products.On("FindByID", mock.Anything, int64(4)).Return(product, nil)
	tiers.On("FindByProduct", mock.Anything, int64(4)).Return([]catalog.WholesaleTier{
		tierFixture(t, 10, 20, nil),
		tierFixture(t, 50, 18, &extra),
	}, nil)

	// Below every tier: retail price
	price, err := service.PriceFor(context.Background(), 4, 5)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(25)))

	// First tier reached
	price, err = service.PriceFor(context.Background(), 4, 12)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(20)))

	// Deepest tier reached, with its extra percentage applied
	price, err = service.PriceFor(context.Background(), 4, 60)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("16.20")))
}
