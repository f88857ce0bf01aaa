// Package renderer turns engine results into markdown reports. The reports
// are plain markdown strings: the CLI renders them to the terminal, the
// assistant feeds them to the model verbatim.
package renderer

import (
	"fmt"

	"github.com/andrelq/carteira"
)

// brl formats an amount in the book's currency.
func brl(v float64) string { return carteira.BRL(v).String() }

// signedBRL formats an amount with an explicit sign, "-" for zero.
func signedBRL(v float64) string { return carteira.BRL(v).SignedString() }

// pct formats a percentage.
func pct(v carteira.Percent) string { return v.String() }

// months formats a month count with its unit.
func months(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}
