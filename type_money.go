package carteira

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of every record in the book. The engine is
// single-currency: positions, loans and fixed income are all priced in BRL.
const DefaultCurrency = "BRL"

// Money represents a monetary value in the book's currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func BRL(value float64) Money {
	return Money{value: decimal.NewFromFloat(value), cur: DefaultCurrency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, formatted with
// the currency's own conventions (R$ 1.234,56 for BRL).
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }
func (m Money) Neg() Money       { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money {
	return Money{value: m.value.Add(n.value), cur: m.cur}
}
func (m Money) Sub(n Money) Money {
	return Money{value: m.value.Sub(n.value), cur: m.cur}
}
