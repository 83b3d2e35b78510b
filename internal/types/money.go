package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundToNearest50 rounds a non-negative amount of cents to the nearest
// 50-cent increment. The remainder within the whole dollar decides the
// direction: below 25 rounds down to the dollar, 25 through 74 rounds to the
// half dollar, 75 and above rounds up to the next dollar.
//
// This rule applies only to derived monthly amounts. Raw per-visit prices
// are stored exactly as configured and must never pass through here.
func RoundToNearest50(cents int64) int64 {
	base := (cents / 100) * 100
	remainder := cents - base

	switch {
	case remainder < 25:
		return base
	case remainder < 75:
		return base + 50
	default:
		return base + 100
	}
}

// FormatCents renders an amount of cents as a dollar string, e.g. 2300 ->
// "$23.00". Used in invoice line item descriptions.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// CentsToDollars converts cents to a decimal dollar amount for API
// responses. Persisted values stay in integer cents.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
