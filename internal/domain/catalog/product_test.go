package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SVC-ONBOARD", "Onboarding Package", decimal.NewFromInt(2500))

		require.NoError(t, err)
		assert.Equal(t, "SVC-ONBOARD", product.SKU)
		assert.Equal(t, "Onboarding Package", product.Name)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(2500)))
		assert.Equal(t, "USD", product.Currency)
		assert.True(t, product.Active)
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("uppercases the SKU", func(t *testing.T) {
		product, err := NewProduct(tenantID, "svc-basic", "Basic", decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, "SVC-BASIC", product.SKU)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		product, err := NewProduct(tenantID, "", "Basic", decimal.NewFromInt(100))

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with invalid SKU characters", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SVC 01", "Basic", decimal.NewFromInt(100))

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SVC-01", "Basic", decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProductSetPrice(t *testing.T) {
	product, _ := NewProduct(uuid.New(), "SVC-01", "Basic", decimal.NewFromInt(100))
	product.ClearDomainEvents()

	t.Run("changes price and raises event", func(t *testing.T) {
		err := product.SetPrice(decimal.NewFromInt(150), "eur")

		require.NoError(t, err)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, "EUR", product.Currency)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		priceEvent, ok := events[0].(*ProductPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, priceEvent.OldPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, priceEvent.NewPrice.Equal(decimal.NewFromInt(150)))
	})

	t.Run("fails with negative price", func(t *testing.T) {
		err := product.SetPrice(decimal.NewFromInt(-5), "")

		assert.Error(t, err)
	})

	t.Run("fails with malformed currency", func(t *testing.T) {
		err := product.SetPrice(decimal.NewFromInt(5), "EURO")

		assert.Error(t, err)
	})
}

func TestProductActivation(t *testing.T) {
	product, _ := NewProduct(uuid.New(), "SVC-01", "Basic", decimal.NewFromInt(100))

	require.Error(t, product.Activate())
	require.NoError(t, product.Deactivate())
	assert.False(t, product.Active)
	require.Error(t, product.Deactivate())
	require.NoError(t, product.Activate())
	assert.True(t, product.Active)
}
