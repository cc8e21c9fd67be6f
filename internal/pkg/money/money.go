// Package money converts between integer cents, the storage unit for every
// commission amount, and decimal currency used on the wire.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrFractionalCents = errors.New("amount has more than two decimal places")
	ErrOutOfRange      = errors.New("amount out of range")
)

var hundred = decimal.NewFromInt(100)

// FromCents renders cents as a two-place decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a currency amount to cents. Sub-cent precision is
// rejected rather than rounded so a caller never loses money silently.
func ToCents(amount decimal.Decimal) (int64, error) {
	scaled := amount.Mul(hundred)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrFractionalCents
	}
	if !scaled.BigInt().IsInt64() {
		return 0, ErrOutOfRange
	}
	return scaled.IntPart(), nil
}

// Percent returns part/whole*100 rounded to two places, or zero when whole is zero.
func Percent(part, whole int64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).Round(2)
}

// AverageCents divides total by count rounding half away from zero, or zero when count is zero.
func AverageCents(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(count)).Round(0).IntPart()
}
