package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), INR)

		require.NoError(t, err)
		assert.Equal(t, INR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")

		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("adds amounts with matching currency", func(t *testing.T) {
		a := NewMoneyINRFromFloat(500)
		b := NewMoneyINRFromFloat(460)

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(960)))
	})

	t.Run("rejects mixed-currency addition", func(t *testing.T) {
		a := NewMoneyINRFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), USD)

		_, err := a.Add(b)

		require.Error(t, err)
	})

	t.Run("subtracts amounts", func(t *testing.T) {
		a := NewMoneyINRFromFloat(960)
		b := NewMoneyINRFromFloat(400)

		diff, err := a.Subtract(b)

		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(560)))
	})

	t.Run("multiplies by integer", func(t *testing.T) {
		m := NewMoneyINRFromFloat(500)

		assert.True(t, m.MultiplyByInt(3).Amount().Equal(decimal.NewFromInt(1500)))
	})
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyINRFromFloat(5)
	big := NewMoneyINRFromFloat(50)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, ZeroINR().IsZero())
	assert.True(t, big.IsPositive())
	assert.False(t, big.IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyINRFromFloat(123.45)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.50"))

		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.Equal(t, "42.5", m.Amount().String())
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))

		assert.True(t, m.IsZero())
	})
}
