package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// All order arithmetic happens in int64 minor units (sen for MYR). Decimal
// values exist only at the display boundary and are always derived from the
// integer amount, never the other way around.

var hundred = decimal.NewFromInt(100)

// FromMajorString parses a decimal amount ("12.50") into minor units.
func FromMajorString(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// ToMajorString renders minor units as a two-decimal display string.
func ToMajorString(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}

// ApplyDiscountPercent returns unitCents discounted by pct (0-100), rounded to
// the nearest minor unit, half away from zero.
func ApplyDiscountPercent(unitCents int64, pct int) int64 {
	if pct <= 0 {
		return unitCents
	}
	if pct >= 100 {
		return 0
	}
	factor := decimal.NewFromInt(int64(100 - pct)).Div(hundred)
	return decimal.NewFromInt(unitCents).Mul(factor).Round(0).IntPart()
}
