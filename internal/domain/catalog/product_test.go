package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	cost := decimal.NewFromFloat(50)
	price := decimal.NewFromFloat(120)

	t.Run("creates product with derived slug", func(t *testing.T) {
		product, err := NewProduct("Collar de Perlas", "Collares", 1, 2, 3, cost, price)
		require.NoError(t, err)

		assert.Equal(t, "Collar de Perlas", product.Name)
		assert.Equal(t, "collares/collar-de-perlas", product.Slug)
		assert.Equal(t, int64(1), product.CategoryID)
		assert.True(t, product.Active)
		assert.False(t, product.Featured)
		assert.Equal(t, 0, product.Stock)
	})

	t.Run("fails with missing references", func(t *testing.T) {
		_, err := NewProduct("Collar", "Collares", 0, 2, 3, cost, price)
		require.Error(t, err)
	})

	t.Run("fails with zero sale price", func(t *testing.T) {
		_, err := NewProduct("Collar", "Collares", 1, 2, 3, cost, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with negative production cost", func(t *testing.T) {
		_, err := NewProduct("Collar", "Collares", 1, 2, 3, decimal.NewFromInt(-1), price)
		require.Error(t, err)
	})
}

func TestProductRename(t *testing.T) {
	product, err := NewProduct("Collar de Perlas", "Collares", 1, 2, 3, decimal.NewFromInt(50), decimal.NewFromInt(120))
	require.NoError(t, err)

	require.NoError(t, product.Rename("Collar de Ámbar", "Collares"))
	assert.Equal(t, "collares/collar-de-ambar", product.Slug)
}

func TestProductStock(t *testing.T) {
	product, err := NewProduct("Collar", "Collares", 1, 2, 3, decimal.NewFromInt(50), decimal.NewFromInt(120))
	require.NoError(t, err)

	require.NoError(t, product.AdjustStock(10))
	assert.Equal(t, 10, product.Stock)
	require.Error(t, product.AdjustStock(-1))
}
