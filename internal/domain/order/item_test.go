package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderItem(t *testing.T) {
	t.Run("creates valid item", func(t *testing.T) {
		item, err := NewOrderItem("kurta", 2, decimal.NewFromInt(400), false, decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "kurta", item.ItemType)
		assert.Equal(t, int64(2), item.Quantity)
	})

	t.Run("rejects empty item type", func(t *testing.T) {
		_, err := NewOrderItem("", 1, decimal.NewFromInt(400), false, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewOrderItem("kurta", 0, decimal.NewFromInt(400), false, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative stitching price", func(t *testing.T) {
		_, err := NewOrderItem("kurta", 1, decimal.NewFromInt(-1), false, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative aster charge", func(t *testing.T) {
		_, err := NewOrderItem("kurta", 1, decimal.NewFromInt(400), true, decimal.NewFromInt(-5))
		require.Error(t, err)
	})

	t.Run("zeroes aster charge when aster not required", func(t *testing.T) {
		item, err := NewOrderItem("kurta", 1, decimal.NewFromInt(400), false, decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.True(t, item.AsterCharge.IsZero())
	})
}

func TestOrderItem_Price(t *testing.T) {
	t.Run("full line with every component", func(t *testing.T) {
		// stitching 500 + aster 100 + fabric 2.5m x 100 = 250
		// + fall/pico charge 80 + billed buttons 30 = 960
		item, err := NewOrderItem("blouse", 1, decimal.NewFromInt(500), true, decimal.NewFromInt(100))
		require.NoError(t, err)

		fabric, err := NewFabricUsage("FAB-023", FabricSourceShop, decimal.NewFromFloat(2.5), decimal.NewFromInt(100))
		require.NoError(t, err)
		item.SetFabric(fabric)

		charge, err := NewAdditionalCharge("fall and pico", decimal.NewFromInt(80))
		require.NoError(t, err)
		item.AddCharge(charge)

		buttons, err := NewAccessoryUsage("ACC-011", "designer buttons", decimal.NewFromInt(6), decimal.NewFromInt(5), true)
		require.NoError(t, err)
		item.AddAccessory(buttons)

		// unbilled hook set consumes stock but adds nothing to the price
		hooks, err := NewAccessoryUsage("ACC-002", "hook set", decimal.NewFromInt(1), decimal.NewFromInt(12), false)
		require.NoError(t, err)
		item.AddAccessory(hooks)

		assert.Equal(t, "960", item.Price().String())
	})

	t.Run("stitching and aster multiply by quantity", func(t *testing.T) {
		item, err := NewOrderItem("kurta", 3, decimal.NewFromInt(400), true, decimal.NewFromInt(50))
		require.NoError(t, err)

		// (400 + 50) x 3
		assert.Equal(t, "1350", item.Price().String())
	})

	t.Run("customer-supplied fabric adds nothing", func(t *testing.T) {
		item, err := NewOrderItem("lehenga", 1, decimal.NewFromInt(1500), false, decimal.Zero)
		require.NoError(t, err)

		fabric, err := NewFabricUsage("", FabricSourceCustomer, decimal.NewFromInt(4), decimal.NewFromInt(200))
		require.NoError(t, err)
		item.SetFabric(fabric)

		assert.Equal(t, "1500", item.Price().String())
		assert.True(t, fabric.FabricCost.IsZero())
	})

	t.Run("recomputing an unchanged item is stable", func(t *testing.T) {
		item, err := NewOrderItem("kurta", 2, decimal.NewFromInt(400), false, decimal.Zero)
		require.NoError(t, err)

		first := item.Price()
		second := item.Price()

		assert.True(t, first.Equal(second))
	})
}

func TestNewFabricUsage(t *testing.T) {
	t.Run("shop fabric requires code", func(t *testing.T) {
		_, err := NewFabricUsage("", FabricSourceShop, decimal.NewFromInt(2), decimal.NewFromInt(100))
		require.Error(t, err)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		_, err := NewFabricUsage("FAB-001", FabricSource("warehouse"), decimal.NewFromInt(2), decimal.NewFromInt(100))
		require.Error(t, err)
	})

	t.Run("rejects non-positive meters", func(t *testing.T) {
		_, err := NewFabricUsage("FAB-001", FabricSourceShop, decimal.Zero, decimal.NewFromInt(100))
		require.Error(t, err)
	})

	t.Run("snapshots cost at meters times rate", func(t *testing.T) {
		usage, err := NewFabricUsage("FAB-001", FabricSourceShop, decimal.NewFromFloat(1.5), decimal.NewFromInt(200))

		require.NoError(t, err)
		assert.Equal(t, "300", usage.FabricCost.String())
	})
}

func TestOrderItems_Total(t *testing.T) {
	kurta, err := NewOrderItem("kurta", 2, decimal.NewFromInt(400), false, decimal.Zero)
	require.NoError(t, err)
	blouse, err := NewOrderItem("blouse", 1, decimal.NewFromInt(500), true, decimal.NewFromInt(100))
	require.NoError(t, err)

	items := OrderItems{kurta, blouse}

	// 800 + 600
	assert.Equal(t, "1400", items.Total().String())
	assert.True(t, OrderItems{}.Total().IsZero())
}

func TestOrderItems_Scan(t *testing.T) {
	item, err := NewOrderItem("kurta", 1, decimal.NewFromInt(400), false, decimal.Zero)
	require.NoError(t, err)
	fabric, err := NewFabricUsage("FAB-001", FabricSourceShop, decimal.NewFromInt(2), decimal.NewFromInt(100))
	require.NoError(t, err)
	item.SetFabric(fabric)

	items := OrderItems{item}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned OrderItems
	require.NoError(t, scanned.Scan(value))

	require.Len(t, scanned, 1)
	assert.Equal(t, item.ID, scanned[0].ID)
	require.NotNil(t, scanned[0].Fabric)
	assert.Equal(t, "FAB-001", scanned[0].Fabric.FabricCode)
	assert.True(t, items.Total().Equal(scanned.Total()))
}
