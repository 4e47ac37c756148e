// Package currency renders monetary amounts for receipts and bill views.
package currency

import (
	"fmt"
	"math"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format renders amount with the symbol of the ISO-4217 code, grouped and
// padded to at least two fraction digits for the given BCP-47 locale.
// Negative amounts are shown in accounting notation: the absolute value
// wrapped in parentheses. Unknown codes or locales fall back to a plain
// fixed-point rendering rather than failing.
func Format(amount float64, code, locale string) string {
	abs := math.Abs(amount)

	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return wrapNegative(amount, fmt.Sprintf("%s %.2f", code, abs))
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	formatted := p.Sprintf("%v%v",
		xcurrency.Symbol(unit),
		number.Decimal(abs, number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	return wrapNegative(amount, formatted)
}

func wrapNegative(amount float64, formatted string) string {
	if amount < 0 {
		return "(" + formatted + ")"
	}
	return formatted
}
