package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest whole-dollar amount a single record may carry.
const MaxAmount int64 = 1_000_000_000_000

// Exponent bounds keep rounding cheap for inputs like "1e999999999".
const (
	maxExponent = 12 // 10^12 == MaxAmount
	minExponent = -64
)

var maxAmount = decimal.NewFromInt(MaxAmount)

// ParseAmount parses a decimal currency value and rounds it to the nearest
// whole unit, ties away from zero (24.5 -> 25). Negative amounts and amounts
// above MaxAmount are rejected.
func ParseAmount(raw string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InvalidAmountError{Raw: raw, Err: err}
	}
	if d.IsNegative() {
		return 0, &InvalidAmountError{Raw: raw, Err: ErrNegativeAmount}
	}
	if d.IsZero() {
		return 0, nil
	}
	if d.Exponent() > maxExponent {
		return 0, &InvalidAmountError{Raw: raw, Err: ErrAmountTooLarge}
	}
	if d.Exponent() < minExponent {
		return 0, &InvalidAmountError{Raw: raw, Err: errAmountPrecision}
	}

	rounded := d.Round(0)
	if rounded.GreaterThan(maxAmount) {
		return 0, &InvalidAmountError{Raw: raw, Err: ErrAmountTooLarge}
	}
	return rounded.IntPart(), nil
}
