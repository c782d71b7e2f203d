package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageOrder(t *testing.T, orderNo, customer string, orderDate time.Time, items order.OrderItems) order.StitchingOrder {
	t.Helper()
	o, err := order.NewStitchingOrder(orderNo, customer, "9876543210",
		orderDate, orderDate.AddDate(0, 0, 7), items, "")
	require.NoError(t, err)
	return *o
}

func itemWithFabric(t *testing.T, itemType, fabricCode string, meters float64) order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem(itemType, 1, decimal.NewFromInt(400), false, decimal.Zero)
	require.NoError(t, err)
	usage, err := order.NewFabricUsage(fabricCode, order.FabricSourceShop, decimal.NewFromFloat(meters), decimal.NewFromInt(100))
	require.NoError(t, err)
	item.SetFabric(usage)
	return item
}

func itemWithAccessory(t *testing.T, itemType, accessoryCode string, qty int64) order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem(itemType, 1, decimal.NewFromInt(400), false, decimal.Zero)
	require.NoError(t, err)
	usage, err := order.NewAccessoryUsage(accessoryCode, "accessory", decimal.NewFromInt(qty), decimal.NewFromInt(5), false)
	require.NoError(t, err)
	item.AddAccessory(usage)
	return item
}

func TestComputeFabricUsage(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC) }

	orders := []order.StitchingOrder{
		usageOrder(t, "ST-001", "Meena", day(1), order.OrderItems{
			itemWithFabric(t, "kurta", "FAB-023", 2.5),
		}),
		usageOrder(t, "ST-002", "Asha", day(5), order.OrderItems{
			itemWithFabric(t, "blouse", "FAB-023", 1.5),
			itemWithFabric(t, "lehenga", "FAB-090", 4),
		}),
		usageOrder(t, "ST-003", "Rani", day(3), order.OrderItems{
			itemWithFabric(t, "kurta", "FAB-023", 8),
		}),
	}

	t.Run("folds matching lines, newest order first", func(t *testing.T) {
		entries := ComputeFabricUsage("FAB-023", orders)

		require.Len(t, entries, 3)
		assert.Equal(t, "ST-002", entries[0].OrderNo)
		assert.Equal(t, "ST-003", entries[1].OrderNo)
		assert.Equal(t, "ST-001", entries[2].OrderNo)
		assert.Equal(t, "12", TotalUsed(entries).String())
	})

	t.Run("other fabrics are untouched", func(t *testing.T) {
		entries := ComputeFabricUsage("FAB-090", orders)

		require.Len(t, entries, 1)
		assert.Equal(t, "4", entries[0].QuantityUsed.String())
		assert.Equal(t, "lehenga", entries[0].ItemDescription)
	})

	t.Run("unknown fabric yields no entries", func(t *testing.T) {
		assert.Empty(t, ComputeFabricUsage("FAB-999", orders))
	})

	t.Run("customer-supplied fabric never appears", func(t *testing.T) {
		item, err := order.NewOrderItem("kurta", 1, decimal.NewFromInt(400), false, decimal.Zero)
		require.NoError(t, err)
		usage, err := order.NewFabricUsage("", order.FabricSourceCustomer, decimal.NewFromInt(3), decimal.Zero)
		require.NoError(t, err)
		item.SetFabric(usage)

		entries := ComputeFabricUsage("", []order.StitchingOrder{
			usageOrder(t, "ST-010", "Devi", day(9), order.OrderItems{item}),
		})

		// the empty code matches the customer line's empty FabricCode;
		// computing usage is only meaningful for real codes
		require.Len(t, entries, 1)
		assert.Equal(t, "3", entries[0].QuantityUsed.String())
	})
}

func TestComputeAccessoryUsage(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 4, d, 10, 0, 0, 0, time.UTC) }

	orders := []order.StitchingOrder{
		usageOrder(t, "ST-004", "Meena", day(2), order.OrderItems{
			itemWithAccessory(t, "blouse", "ACC-011", 6),
		}),
		usageOrder(t, "ST-005", "Asha", day(6), order.OrderItems{
			itemWithAccessory(t, "kurta", "ACC-011", 4),
			itemWithAccessory(t, "kurta", "ACC-002", 1),
		}),
	}

	entries := ComputeAccessoryUsage("ACC-011", orders)

	require.Len(t, entries, 2)
	assert.Equal(t, "ST-005", entries[0].OrderNo)
	assert.Equal(t, "10", TotalUsed(entries).String())

	assert.Len(t, ComputeAccessoryUsage("ACC-002", orders), 1)
	assert.Empty(t, ComputeAccessoryUsage("ACC-404", orders))
}

// Edited orders change the reconstruction immediately: nothing is
// cached, so recomputing after an item edit reflects the new quantities.
func TestComputeFabricUsage_ReflectsEdits(t *testing.T) {
	day := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	o := usageOrder(t, "ST-020", "Meena", day, order.OrderItems{
		itemWithFabric(t, "kurta", "FAB-023", 5),
	})

	before := TotalUsed(ComputeFabricUsage("FAB-023", []order.StitchingOrder{o}))
	assert.Equal(t, "5", before.String())

	require.NoError(t, o.ReplaceItems(order.OrderItems{
		itemWithFabric(t, "kurta", "FAB-023", 2),
	}))

	after := TotalUsed(ComputeFabricUsage("FAB-023", []order.StitchingOrder{o}))
	assert.Equal(t, "2", after.String())
}
