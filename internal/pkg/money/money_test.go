package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCents(t *testing.T) {
	assert.Equal(t, "10.00", FromCents(1000).StringFixed(2))
	assert.Equal(t, "-0.50", FromCents(-50).StringFixed(2))
	assert.True(t, FromCents(0).IsZero())
}

func TestToCents(t *testing.T) {
	cents, err := ToCents(decimal.RequireFromString("450"))
	require.NoError(t, err)
	assert.Equal(t, int64(45000), cents)

	cents, err = ToCents(decimal.RequireFromString("12.34"))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cents)

	cents, err = ToCents(decimal.RequireFromString("12.30"))
	require.NoError(t, err)
	assert.Equal(t, int64(1230), cents)
}

func TestToCents_RejectsSubCent(t *testing.T) {
	_, err := ToCents(decimal.RequireFromString("12.345"))
	assert.ErrorIs(t, err, ErrFractionalCents)
}

func TestToCents_RejectsOverflow(t *testing.T) {
	_, err := ToCents(decimal.RequireFromString("1e20"))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(0, 0).IsZero())
	assert.Equal(t, "50.00", Percent(1, 2).StringFixed(2))
	assert.Equal(t, "33.33", Percent(1, 3).StringFixed(2))
}

func TestAverageCents(t *testing.T) {
	assert.Equal(t, int64(0), AverageCents(1000, 0))
	assert.Equal(t, int64(500), AverageCents(1000, 2))
	assert.Equal(t, int64(334), AverageCents(1001, 3))
}
