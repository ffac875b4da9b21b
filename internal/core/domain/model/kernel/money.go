package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money amounts are carried through the domain as exact decimal strings:
// scale 2 for currency totals, scale 4 for quantities and unit prices.
// All arithmetic goes through shopspring/decimal; binary floats never touch
// a money value.
const (
	// MoneyScale is the number of decimal places for currency amounts.
	MoneyScale = 2

	// QuantityScale is the number of decimal places for quantities and unit prices.
	QuantityScale = 4
)

// ZeroMoney returns the canonical zero currency amount, "0.00".
func ZeroMoney() string {
	return decimal.Zero.StringFixed(MoneyScale)
}

// ZeroQuantity returns the canonical zero quantity, "0.0000".
func ZeroQuantity() string {
	return decimal.Zero.StringFixed(QuantityScale)
}

// MustAmount parses a decimal string into an exact decimal value.
//
// A non-numeric input is a caller bug, not a runtime business condition, so
// this panics rather than returning an error. Validate external input before
// it reaches domain setters.
func MustAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("kernel: %q is not a valid decimal amount: %v", s, err))
	}
	return d
}

// IsDecimal reports whether s parses as a decimal number. Used by adapters to
// validate external input before it reaches the fail-fast domain setters.
func IsDecimal(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}

// RoundMoney rounds half-up to MoneyScale and formats with a fixed scale,
// e.g. "1000.00".
func RoundMoney(d decimal.Decimal) string {
	return d.Round(MoneyScale).StringFixed(MoneyScale)
}

// RoundQuantity rounds half-up to QuantityScale and formats with a fixed
// scale, e.g. "10.0000".
func RoundQuantity(d decimal.Decimal) string {
	return d.Round(QuantityScale).StringFixed(QuantityScale)
}

// IsPositive reports whether the decimal string s is strictly greater than zero.
// Panics on non-numeric input, like MustAmount.
func IsPositive(s string) bool {
	return MustAmount(s).IsPositive()
}
