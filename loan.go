package carteira

import (
	"math"

	"github.com/andrelq/carteira/date"
	"github.com/google/uuid"
)

// BalanceSource identifies which alternative won when computing a loan's
// outstanding balance, so callers never have to guess whether a figure is a
// lender statement or a formula result.
type BalanceSource int

const (
	// BalanceDerived means the balance was computed from the price-system
	// amortization formula and the elapsed periods.
	BalanceDerived BalanceSource = iota
	// BalanceFromLender means the balance is the lender-reported snapshot,
	// returned as-is because it is authoritative.
	BalanceFromLender
)

func (s BalanceSource) String() string {
	switch s {
	case BalanceFromLender:
		return "lender"
	default:
		return "derived"
	}
}

// LoanContract represents one amortized debt in the price system (constant
// instalment, declining interest portion).
//
// The Known* fields carry the last lender-reported snapshot; a zero value
// means "not reported". KnownRemainingMonths is a pointer because zero
// remaining months is a real statement (the loan is paid off), distinct from
// the field being absent.
type LoanContract struct {
	ID                   uuid.UUID
	Name                 string
	Principal            float64 // original financed amount
	AnnualNominalRate    float64 // percent, nominal annual (divided by 12, not converted)
	TermMonths           int
	StartDate            date.Date
	KnownInstalment      float64
	KnownBalance         float64
	KnownRemainingMonths *int
	DueDay               int    // day of month the instalment is due; gates the monthly advance
	LastProcessed        string // month key ("2025-08") of the last auto-advance
}

// LoanSnapshot is the read-only projection of a contract at an evaluation
// date. It is recomputed on every read and never persisted.
type LoanSnapshot struct {
	Instalment         float64
	OutstandingBalance float64
	TotalInterest      float64
	RemainingMonths    int
	ElapsedMonths      int
	PayoffDate         date.Date
	Source             BalanceSource
}

// MonthlyRate returns the contract's monthly interest rate as a fraction.
// The nominal annual rate is divided by 12, matching how Brazilian lenders
// state these contracts, not converted to an effective monthly rate.
func (c LoanContract) MonthlyRate() float64 {
	return c.AnnualNominalRate / 12 / 100
}

// Instalment returns the monthly instalment: the lender-stated one when
// reported, otherwise the price-system annuity PMT = P·i / (1 − (1+i)^−n).
func (c LoanContract) Instalment() float64 {
	if c.KnownInstalment > 0 {
		return c.KnownInstalment
	}
	i := c.MonthlyRate()
	if i > 0 {
		return c.Principal * i / (1 - math.Pow(1+i, -float64(c.TermMonths)))
	}
	return c.Principal / float64(c.TermMonths)
}

// Compute evaluates the contract at the given date. The boolean is false when
// the contract lacks the inputs any computation needs (non-positive principal
// or term); callers must then skip the loan in aggregates, not count it as
// zero.
func (c LoanContract) Compute(asOf date.Date) (LoanSnapshot, bool) {
	if c.Principal <= 0 || c.TermMonths <= 0 {
		return LoanSnapshot{}, false
	}

	i := c.MonthlyRate()
	n := c.TermMonths
	pmt := c.Instalment()

	// Elapsed periods: the lender statement anchors the count when it names
	// the remaining months; otherwise elapsed calendar months since the start.
	var elapsed int
	if c.KnownBalance > 0 && c.KnownRemainingMonths != nil {
		elapsed = n - *c.KnownRemainingMonths
	} else {
		elapsed = date.MonthsBetween(c.StartDate, asOf)
	}
	if elapsed > n {
		elapsed = n
	}
	if elapsed < 0 {
		elapsed = 0
	}

	balance := c.KnownBalance
	source := BalanceFromLender
	if c.KnownBalance <= 0 {
		source = BalanceDerived
		if i > 0 {
			f := math.Pow(1+i, float64(elapsed))
			balance = c.Principal*f - pmt*(f-1)/i
		} else {
			balance = c.Principal - pmt*float64(elapsed)
		}
		if balance < 0 {
			balance = 0
		}
	}

	remaining := n - elapsed
	if c.KnownRemainingMonths != nil {
		remaining = *c.KnownRemainingMonths
	}
	if remaining < 0 {
		remaining = 0
	}

	totalInterest := pmt*float64(n) - c.Principal
	if totalInterest < 0 {
		totalInterest = 0
	}

	return LoanSnapshot{
		Instalment:         pmt,
		OutstandingBalance: balance,
		TotalInterest:      totalInterest,
		RemainingMonths:    remaining,
		ElapsedMonths:      elapsed,
		PayoffDate:         c.StartDate.AddMonths(n),
		Source:             source,
	}, true
}

// ShouldAdvance reports whether AdvanceMonth would mutate the contract at the
// given date. It is a pure query: the due day must have been reached and the
// current calendar month must not have been processed yet. Callers rendering
// on every read can invoke it freely.
func (c LoanContract) ShouldAdvance(asOf date.Date) bool {
	if c.Principal <= 0 || c.TermMonths <= 0 {
		return false
	}
	due := c.DueDay
	if due <= 0 {
		due = 1
	}
	if asOf.Day() < due {
		return false
	}
	return c.LastProcessed != asOf.MonthKey()
}

// AdvanceMonth simulates the payment of exactly one instalment: the month's
// interest accrues on the current balance, the rest of the instalment
// amortizes principal, and the remaining months decrement. The contract's
// lender snapshot is updated to the result and the month key is recorded, so
// a second call within the same calendar month is a no-op. This is the only
// state transition in the engine.
func (c *LoanContract) AdvanceMonth(asOf date.Date) bool {
	if !c.ShouldAdvance(asOf) {
		return false
	}
	snap, ok := c.Compute(asOf)
	if !ok {
		return false
	}

	interest := snap.OutstandingBalance * c.MonthlyRate()
	amortized := snap.Instalment - interest
	balance := snap.OutstandingBalance - amortized
	if balance < 0 {
		balance = 0
	}
	remaining := snap.RemainingMonths - 1
	if remaining < 0 {
		remaining = 0
	}

	c.KnownBalance = balance
	c.KnownRemainingMonths = &remaining
	c.LastProcessed = asOf.MonthKey()
	return true
}

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Period    int
	DueDate   date.Date
	Interest  float64
	Amortized float64
	Balance   float64
}

// Schedule generates the contract's full amortization schedule from its
// original principal. It returns nil when the contract is not computable.
func (c LoanContract) Schedule() []ScheduleEntry {
	if c.Principal <= 0 || c.TermMonths <= 0 {
		return nil
	}
	i := c.MonthlyRate()
	pmt := c.Instalment()

	entries := make([]ScheduleEntry, 0, c.TermMonths)
	balance := c.Principal
	for period := 1; period <= c.TermMonths; period++ {
		interest := balance * i
		amortized := pmt - interest
		balance -= amortized
		if balance < 0 || period == c.TermMonths {
			balance = 0
		}
		entries = append(entries, ScheduleEntry{
			Period:    period,
			DueDate:   c.StartDate.AddMonths(period),
			Interest:  interest,
			Amortized: amortized,
			Balance:   balance,
		})
	}
	return entries
}
