package money

import (
	"github.com/shopspring/decimal"
)

var (
	Zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders a fixed two-decimal string without currency symbol, e.g. "27.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(hundred)
}

func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Cents converts a float-free amount to minor units.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
