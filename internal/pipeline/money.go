package pipeline

import "github.com/shopspring/decimal"

var billion = decimal.NewFromInt(1_000_000_000)

// Billions formats an amount in billions with two decimals.
func Billions(d decimal.Decimal) string {
	return d.Div(billion).StringFixed(2)
}
