package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/shared"
	"github.com/stitchpos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, sellingPrice int64) *Item {
	t.Helper()
	cost := valueobject.NewMoneyINR(decimal.NewFromInt(400))
	selling := valueobject.NewMoneyINR(decimal.NewFromInt(sellingPrice))
	item, err := NewItem("ITM-001", "Banarasi saree", "saree", "free", cost, selling)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("creates unsold item", func(t *testing.T) {
		item := newTestItem(t, 650)

		assert.Equal(t, "ITM-001", item.Code)
		assert.False(t, item.Sold)
		assert.Nil(t, item.SoldBillNo)
		assert.Nil(t, item.SoldAt)
	})

	t.Run("rejects empty code and description", func(t *testing.T) {
		price := valueobject.NewMoneyINR(decimal.NewFromInt(100))

		_, err := NewItem("", "Banarasi saree", "saree", "", price, price)
		require.Error(t, err)

		_, err = NewItem("ITM-001", "", "saree", "", price, price)
		require.Error(t, err)
	})
}

func TestItem_AvailableForSale(t *testing.T) {
	t.Run("unsold priced item can be billed", func(t *testing.T) {
		item := newTestItem(t, 650)

		assert.NoError(t, item.AvailableForSale())
	})

	t.Run("sold item is rejected", func(t *testing.T) {
		item := newTestItem(t, 650)
		require.NoError(t, item.MarkSold(42, time.Now()))

		assert.ErrorIs(t, item.AvailableForSale(), shared.ErrItemAlreadySold)
	})

	t.Run("zero selling price is rejected", func(t *testing.T) {
		item := newTestItem(t, 650)
		item.SellingPrice = decimal.Zero

		assert.Error(t, item.AvailableForSale())
	})
}

func TestItem_MarkSold(t *testing.T) {
	item := newTestItem(t, 650)
	soldAt := time.Date(2026, 7, 1, 15, 0, 0, 0, time.UTC)

	require.NoError(t, item.MarkSold(42, soldAt))

	assert.True(t, item.Sold)
	require.NotNil(t, item.SoldBillNo)
	assert.Equal(t, int64(42), *item.SoldBillNo)
	require.NotNil(t, item.SoldAt)
	assert.True(t, item.SoldAt.Equal(soldAt))

	// selling the same one-off piece twice is impossible
	assert.ErrorIs(t, item.MarkSold(43, time.Now()), shared.ErrItemAlreadySold)
}

func TestItem_UpdateSellingPrice(t *testing.T) {
	t.Run("updates price on unsold item", func(t *testing.T) {
		item := newTestItem(t, 650)

		price := valueobject.NewMoneyINR(decimal.NewFromInt(700))
		require.NoError(t, item.UpdateSellingPrice(price))

		assert.Equal(t, "700", item.SellingPrice.String())
	})

	t.Run("sold item keeps its price", func(t *testing.T) {
		item := newTestItem(t, 650)
		require.NoError(t, item.MarkSold(42, time.Now()))

		price := valueobject.NewMoneyINR(decimal.NewFromInt(700))

		assert.ErrorIs(t, item.UpdateSellingPrice(price), shared.ErrItemAlreadySold)
	})
}
