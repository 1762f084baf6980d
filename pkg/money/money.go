// Package money formats decimal amounts for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ARS is the storefront's display currency.
var ARS = currency.MustParseISO("ARS")

// Format renders an amount with its currency symbol. The decimal is
// converted to float for display only; all arithmetic stays in decimal.
func Format(amount decimal.Decimal, unit currency.Unit) string {
	return fmt.Sprintf("%v", currency.Symbol(unit.Amount(amount.InexactFloat64())))
}

// FormatARS renders an amount in the storefront's currency.
func FormatARS(amount decimal.Decimal) string {
	return Format(amount, ARS)
}
