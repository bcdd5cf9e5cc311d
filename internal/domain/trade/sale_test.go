package trade

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func validParams() NewSaleParams {
	return NewSaleParams{
		CustomerName:     "Ana",
		CustomerLastName: "García",
		Email:            "Ana@Example.com",
		Address:          "Calle 1 #23",
		City:             "Guadalajara",
		PostalCode:       "44100",
		CardNumber:       "4242424242424242",
		Subtotal:         decimal.NewFromInt(100),
		Total:            decimal.NewFromInt(100),
		Items:            datatypes.JSON(`[{"productId":1,"quantity":2}]`),
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{13}-\d{4}$`)
	for i := 0; i < 10; i++ {
		assert.Regexp(t, pattern, GenerateOrderNumber())
	}
}

func TestNewSale(t *testing.T) {
	t.Run("creates pending sale with defaults", func(t *testing.T) {
		sale, err := NewSale(validParams())
		require.NoError(t, err)

		assert.Equal(t, SaleStatusPending, sale.Status)
		assert.Equal(t, "México", sale.Country)
		assert.Equal(t, "card", sale.PaymentMethod)
		assert.Equal(t, "ana@example.com", sale.Email)
		assert.Regexp(t, `^ORD-`, sale.OrderNumber)
	})

	t.Run("keeps only card last four digits", func(t *testing.T) {
		sale, err := NewSale(validParams())
		require.NoError(t, err)
		assert.Equal(t, "4242", sale.CardLast4)
		assert.NotContains(t, sale.CardLast4, "42424242")
	})

	t.Run("fails with missing required fields", func(t *testing.T) {
		params := validParams()
		params.City = "  "
		_, err := NewSale(params)
		require.Error(t, err)
	})

	t.Run("fails without items", func(t *testing.T) {
		params := validParams()
		params.Items = nil
		_, err := NewSale(params)
		require.Error(t, err)
	})
}

func TestSaleChangeStatus(t *testing.T) {
	sale, err := NewSale(validParams())
	require.NoError(t, err)

	require.NoError(t, sale.ChangeStatus(SaleStatusProcessing))
	require.NoError(t, sale.ChangeStatus(SaleStatusShipped))
	require.NoError(t, sale.ChangeStatus(SaleStatusDelivered))

	t.Run("terminal status is frozen", func(t *testing.T) {
		err := sale.ChangeStatus(SaleStatusPending)
		require.Error(t, err)
		assert.Equal(t, SaleStatusDelivered, sale.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		fresh, err := NewSale(validParams())
		require.NoError(t, err)
		require.Error(t, fresh.ChangeStatus(SaleStatus("misplaced")))
	})
}
