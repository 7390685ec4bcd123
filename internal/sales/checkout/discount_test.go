package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountApplyMoney(t *testing.T) {
	price, err := Discount{Kind: DiscountMoney, Value: 15000}.Apply(100000)
	require.NoError(t, err)
	assert.Equal(t, 85000.0, price)
}

func TestDiscountApplyPercent(t *testing.T) {
	price, err := Discount{Kind: DiscountPercent, Value: 10}.Apply(100000)
	require.NoError(t, err)
	assert.Equal(t, 90000.0, price)
}

func TestDiscountMoneyClampsAtZero(t *testing.T) {
	price, err := Discount{Kind: DiscountMoney, Value: 150000}.Apply(100000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestDiscountPercentFull(t *testing.T) {
	price, err := Discount{Kind: DiscountPercent, Value: 100}.Apply(100000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestDiscountPercentOutOfRange(t *testing.T) {
	_, err := Discount{Kind: DiscountPercent, Value: 101}.Apply(100000)
	assert.ErrorIs(t, err, ErrDiscountRange)

	_, err = Discount{Kind: DiscountPercent, Value: -1}.Apply(100000)
	assert.ErrorIs(t, err, ErrDiscountRange)
}

func TestDiscountMoneyNegative(t *testing.T) {
	_, err := Discount{Kind: DiscountMoney, Value: -500}.Apply(100000)
	assert.ErrorIs(t, err, ErrDiscountRange)
}

func TestDiscountUnknownKind(t *testing.T) {
	_, err := Discount{Kind: "coupon", Value: 5}.Apply(100000)
	assert.ErrorIs(t, err, ErrDiscountKind)
}
