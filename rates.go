package carteira

import "github.com/andrelq/carteira/date"

// ReferenceRates holds the annual Brazilian reference rates the fixed-income
// estimator compounds against. All values are percent per annum as published
// (CDI and Selic on the 252-business-day convention, inflation as the
// 12-month accumulated index).
type ReferenceRates struct {
	CDI       float64   `json:"cdi"`
	Selic     float64   `json:"selic"`
	Inflation float64   `json:"inflation"` // IPCA/IGP-M accumulated over 12 months
	Updated   date.Date `json:"updated,omitzero"`
}

// DefaultRates returns the fallback reference rates used when no fresher
// values have been fetched from the Banco Central.
func DefaultRates() ReferenceRates {
	return ReferenceRates{CDI: 12.65, Selic: 12.25, Inflation: 4.5}
}

// IsZero reports whether the rates have never been set.
func (r ReferenceRates) IsZero() bool {
	return r.CDI == 0 && r.Selic == 0 && r.Inflation == 0
}
