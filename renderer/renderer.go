// Package renderer turns ledger statuses into markdown reports. It is a pure
// consumer of the engine: it computes nothing, it only formats.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// reportingCurrency is the currency amounts are formatted in. The ledger
// itself is currency-agnostic; formatting is a presentation concern.
var reportingCurrency = "EUR"

// SetReportingCurrency changes the currency used to format amounts.
func SetReportingCurrency(code string) { reportingCurrency = code }

// amount formats a decimal in the reporting currency.
func amount(v decimal.Decimal) string {
	// the Money constructor is the one way to a never nil currency.
	cur := *money.New(0, reportingCurrency).Currency()
	return cur.Formatter().Format(v.Shift(int32(cur.Fraction)).IntPart())
}

// signedAmount formats like amount but with an explicit sign, and a zero as "-".
func signedAmount(v decimal.Decimal) string {
	if v.IsZero() {
		return "-"
	}
	if v.IsPositive() {
		return "+" + amount(v)
	}
	return amount(v)
}

// reportRenderer accumulates markdown output.
type reportRenderer struct {
	*strings.Builder
}

func newReportRenderer() *reportRenderer {
	return &reportRenderer{Builder: &strings.Builder{}}
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *reportRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
