package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.MustParse("en-CA"))
)

// Money formats an amount as dollars with thousands separators and cents,
// e.g. $1,234,567.89. Cents come from the exact decimal, the printer only
// groups whole dollars.
func Money(d decimal.Decimal) string {
	cents := d.Round(2)
	_, frac, _ := strings.Cut(cents.Abs().StringFixed(2), ".")
	s := printer.Sprintf("$%d.%s", cents.Abs().IntPart(), frac)
	if cents.IsNegative() {
		return "-" + s
	}
	return s
}

// Rate formats a fractional rate as a percentage with three decimals,
// e.g. 0.01 -> 1.000%.
func Rate(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(3) + "%"
}
