package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderItems(t *testing.T) OrderItems {
	t.Helper()
	kurta, err := NewOrderItem("kurta", 2, decimal.NewFromInt(400), false, decimal.Zero)
	require.NoError(t, err)
	blouse, err := NewOrderItem("blouse", 1, decimal.NewFromInt(500), true, decimal.NewFromInt(100))
	require.NoError(t, err)
	return OrderItems{kurta, blouse}
}

func newTestStitchingOrder(t *testing.T) *StitchingOrder {
	t.Helper()
	o, err := NewStitchingOrder("ST-001", "Meena", "9876543210",
		time.Now(), time.Now().AddDate(0, 0, 7), testOrderItems(t), "")
	require.NoError(t, err)
	return o
}

func TestNewStitchingOrder(t *testing.T) {
	t.Run("computes total from item list", func(t *testing.T) {
		o := newTestStitchingOrder(t)

		assert.Equal(t, "1400", o.TotalAmount.String())
		assert.Equal(t, StitchingPending, o.Status)
		assert.True(t, o.AmountPaid.IsZero())
	})

	t.Run("rejects missing customer identity", func(t *testing.T) {
		_, err := NewStitchingOrder("ST-001", "", "9876543210",
			time.Now(), time.Now().AddDate(0, 0, 7), testOrderItems(t), "")
		require.Error(t, err)

		_, err = NewStitchingOrder("ST-001", "Meena", "",
			time.Now(), time.Now().AddDate(0, 0, 7), testOrderItems(t), "")
		require.Error(t, err)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := NewStitchingOrder("ST-001", "Meena", "9876543210",
			time.Now(), time.Now().AddDate(0, 0, 7), OrderItems{}, "")
		require.Error(t, err)
	})

	t.Run("rejects missing promise date", func(t *testing.T) {
		_, err := NewStitchingOrder("ST-001", "Meena", "9876543210",
			time.Now(), time.Time{}, testOrderItems(t), "")
		require.Error(t, err)
	})
}

func TestStitchingOrder_ReplaceItems(t *testing.T) {
	t.Run("recomputes total from the new list", func(t *testing.T) {
		o := newTestStitchingOrder(t)

		lehenga, err := NewOrderItem("lehenga", 1, decimal.NewFromInt(2000), false, decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, o.ReplaceItems(OrderItems{lehenga}))
		assert.Equal(t, "2000", o.TotalAmount.String())

		assert.Error(t, o.ReplaceItems(OrderItems{}))
	})

	t.Run("rejects an edit that drops the total below the amount paid", func(t *testing.T) {
		o := newTestStitchingOrder(t)
		require.NoError(t, o.AddPayment(mustPayment(t, 900, PaymentCash)))

		petticoat, err := NewOrderItem("petticoat", 1, decimal.NewFromInt(300), false, decimal.Zero)
		require.NoError(t, err)

		err = o.ReplaceItems(OrderItems{petticoat})
		require.Error(t, err)

		// Order is untouched and the amount due never goes negative
		assert.Equal(t, "1400", o.TotalAmount.String())
		assert.Equal(t, "900", o.AmountPaid.String())
		assert.Equal(t, "500", o.Due().String())
	})
}

func TestStitchingOrder_VerifyTotal(t *testing.T) {
	o := newTestStitchingOrder(t)

	assert.NoError(t, o.VerifyTotal(decimal.NewFromInt(1400)))
	assert.Error(t, o.VerifyTotal(decimal.NewFromInt(1300)))
}

func TestStitchingOrder_SetStatus(t *testing.T) {
	t.Run("moves through the lifecycle", func(t *testing.T) {
		o := newTestStitchingOrder(t)

		require.NoError(t, o.SetStatus(StitchingInProgress))
		require.NoError(t, o.SetStatus(StitchingReady))
		require.NoError(t, o.SetStatus(StitchingDelivered))
		assert.Equal(t, StitchingDelivered, o.Status)
	})

	t.Run("stuck is reachable from any non-terminal state", func(t *testing.T) {
		o := newTestStitchingOrder(t)

		require.NoError(t, o.SetStatus(StitchingStuck))
		require.NoError(t, o.SetStatus(StitchingInProgress))
	})

	t.Run("delivered order cannot be marked stuck", func(t *testing.T) {
		o := newTestStitchingOrder(t)
		require.NoError(t, o.SetStatus(StitchingDelivered))

		assert.Error(t, o.SetStatus(StitchingStuck))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := newTestStitchingOrder(t)

		assert.Error(t, o.SetStatus(StitchingStatus("cancelled")))
	})
}

func TestStitchingOrder_AddPayment(t *testing.T) {
	o := newTestStitchingOrder(t)

	require.NoError(t, o.AddPayment(mustPayment(t, 400, PaymentCash)))
	assert.Equal(t, "1000", o.Due().String())

	err := o.AddPayment(mustPayment(t, 1500, PaymentUPI))
	require.Error(t, err)
	assert.Equal(t, "1000", o.Due().String())
}

func TestStitchingOrder_Codes(t *testing.T) {
	kurta, err := NewOrderItem("kurta", 1, decimal.NewFromInt(400), false, decimal.Zero)
	require.NoError(t, err)
	fabric, err := NewFabricUsage("FAB-023", FabricSourceShop, decimal.NewFromInt(2), decimal.NewFromInt(100))
	require.NoError(t, err)
	kurta.SetFabric(fabric)
	buttons, err := NewAccessoryUsage("ACC-011", "buttons", decimal.NewFromInt(6), decimal.NewFromInt(5), true)
	require.NoError(t, err)
	kurta.AddAccessory(buttons)

	blouse, err := NewOrderItem("blouse", 1, decimal.NewFromInt(500), false, decimal.Zero)
	require.NoError(t, err)
	blouse.SetFabric(fabric) // same fabric on a second line
	hooks, err := NewAccessoryUsage("ACC-002", "hooks", decimal.NewFromInt(1), decimal.NewFromInt(12), false)
	require.NoError(t, err)
	blouse.AddAccessory(hooks)
	blouse.AddAccessory(buttons)

	o, err := NewStitchingOrder("ST-002", "Meena", "9876543210",
		time.Now(), time.Now().AddDate(0, 0, 7), OrderItems{kurta, blouse}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"FAB-023"}, o.FabricCodes())
	assert.Equal(t, []string{"ACC-011", "ACC-002"}, o.AccessoryCodes())
}
