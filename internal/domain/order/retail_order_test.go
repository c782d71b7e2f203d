package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRetailLine(t *testing.T, itemCode string, price int64, given bool) RetailLine {
	t.Helper()
	line, err := NewRetailLine(itemCode, "ready-made piece", decimal.NewFromInt(price), given)
	require.NoError(t, err)
	return line
}

func newTestRetailOrder(t *testing.T, lines RetailLines) *RetailOrder {
	t.Helper()
	o, err := NewRetailOrder(42, "Asha", "9123456780", time.Now(), lines, "")
	require.NoError(t, err)
	return o
}

func TestNewRetailLine(t *testing.T) {
	t.Run("rejects empty item code", func(t *testing.T) {
		_, err := NewRetailLine("", "desc", decimal.NewFromInt(100), false)
		require.Error(t, err)
	})

	t.Run("rejects zero selling price", func(t *testing.T) {
		_, err := NewRetailLine("ITM-001", "desc", decimal.Zero, false)
		require.Error(t, err)
	})
}

func TestNewRetailOrder(t *testing.T) {
	t.Run("computes total from lines", func(t *testing.T) {
		o := newTestRetailOrder(t, RetailLines{
			mustRetailLine(t, "ITM-001", 650, true),
			mustRetailLine(t, "ITM-002", 350, true),
		})

		assert.Equal(t, "1000", o.TotalAmount.String())
		assert.Equal(t, RetailPending, o.Status)
	})

	t.Run("rejects non-positive bill number", func(t *testing.T) {
		_, err := NewRetailOrder(0, "Asha", "9123456780", time.Now(),
			RetailLines{mustRetailLine(t, "ITM-001", 100, true)}, "")
		require.Error(t, err)
	})

	t.Run("rejects empty line list", func(t *testing.T) {
		_, err := NewRetailOrder(1, "Asha", "9123456780", time.Now(), RetailLines{}, "")
		require.Error(t, err)
	})
}

func TestRetailOrder_DeriveInitialStatus(t *testing.T) {
	t.Run("completed when fully paid and all given", func(t *testing.T) {
		o := newTestRetailOrder(t, RetailLines{mustRetailLine(t, "ITM-001", 500, true)})
		require.NoError(t, o.AddPayment(mustPayment(t, 500, PaymentCash)))

		o.DeriveInitialStatus()

		assert.Equal(t, RetailCompleted, o.Status)
	})

	t.Run("pending when a balance is due", func(t *testing.T) {
		o := newTestRetailOrder(t, RetailLines{mustRetailLine(t, "ITM-001", 500, true)})
		require.NoError(t, o.AddPayment(mustPayment(t, 200, PaymentCash)))

		o.DeriveInitialStatus()

		assert.Equal(t, RetailPending, o.Status)
	})

	t.Run("pending when a line was not handed over", func(t *testing.T) {
		o := newTestRetailOrder(t, RetailLines{
			mustRetailLine(t, "ITM-001", 300, true),
			mustRetailLine(t, "ITM-002", 200, false),
		})
		require.NoError(t, o.AddPayment(mustPayment(t, 500, PaymentUPI)))

		o.DeriveInitialStatus()

		assert.Equal(t, RetailPending, o.Status)
	})

	t.Run("later payments do not re-derive the status", func(t *testing.T) {
		o := newTestRetailOrder(t, RetailLines{mustRetailLine(t, "ITM-001", 500, true)})
		o.DeriveInitialStatus()
		require.Equal(t, RetailPending, o.Status)

		// Settling the bill afterwards leaves the status operator-owned
		require.NoError(t, o.AddPayment(mustPayment(t, 500, PaymentCash)))
		assert.Equal(t, RetailPending, o.Status)
	})
}

func TestRetailOrder_MarkLineGiven(t *testing.T) {
	line := mustRetailLine(t, "ITM-001", 500, false)
	o := newTestRetailOrder(t, RetailLines{line})

	require.NoError(t, o.MarkLineGiven(line.ID, true))
	assert.True(t, o.Lines[0].Given)

	err := o.MarkLineGiven(mustRetailLine(t, "ITM-999", 100, false).ID, true)
	require.Error(t, err)
}

func TestRetailOrder_AddPayment(t *testing.T) {
	o := newTestRetailOrder(t, RetailLines{mustRetailLine(t, "ITM-001", 500, true)})

	require.NoError(t, o.AddPayment(mustPayment(t, 300, PaymentCard)))
	assert.Equal(t, "200", o.Due().String())

	err := o.AddPayment(mustPayment(t, 250, PaymentCash))
	require.Error(t, err)
}

func TestRetailOrder_ItemCodes(t *testing.T) {
	o := newTestRetailOrder(t, RetailLines{
		mustRetailLine(t, "ITM-001", 300, true),
		mustRetailLine(t, "ITM-002", 200, true),
	})

	assert.Equal(t, []string{"ITM-001", "ITM-002"}, o.ItemCodes())
}
