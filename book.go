package carteira

import (
	"fmt"

	"github.com/andrelq/carteira/date"
	"github.com/google/uuid"
)

// Book is the aggregate of all user-recorded entities plus the last fetched
// market context. It is the single source of truth: everything else is
// derived from it on read.
type Book struct {
	Positions   []Position
	FixedIncome []FixedIncomePosition
	Loans       []LoanContract
	Quotes      map[string]Quote
	Rates       ReferenceRates
}

// NewBook creates an empty book with default reference rates.
func NewBook() *Book {
	return &Book{
		Quotes: make(map[string]Quote),
		Rates:  DefaultRates(),
	}
}

// Quote returns the stored quote for a ticker, if any.
func (b *Book) Quote(ticker string) (Quote, bool) {
	q, ok := b.Quotes[ticker]
	return q, ok
}

// SetQuote stores a fetched quote.
func (b *Book) SetQuote(q Quote) {
	if b.Quotes == nil {
		b.Quotes = make(map[string]Quote)
	}
	b.Quotes[q.Ticker] = q
}

// Loan returns the loan contract with the given id, or nil.
func (b *Book) Loan(id uuid.UUID) *LoanContract {
	for i := range b.Loans {
		if b.Loans[i].ID == id {
			return &b.Loans[i]
		}
	}
	return nil
}

// AdvanceLoans runs the idempotent monthly advance over every loan and
// returns the number of contracts that mutated. Safe to call any number of
// times: each contract moves at most once per calendar month.
func (b *Book) AdvanceLoans(asOf date.Date) int {
	advanced := 0
	for i := range b.Loans {
		if b.Loans[i].AdvanceMonth(asOf) {
			advanced++
		}
	}
	return advanced
}

// FixedIncomeView is a fixed-income holding with its computed valuation.
type FixedIncomeView struct {
	FixedIncomePosition
	Valuation  Valuation
	ProfitLoss float64
}

// LoanView is a loan contract with its computed snapshot.
type LoanView struct {
	LoanContract
	Snapshot LoanSnapshot
}

// Review is the at-a-glance state of the whole portfolio on a given date.
// Entities whose value is not computable are listed in Skipped and excluded
// from every total, never counted as zero.
type Review struct {
	Date        date.Date
	Assets      []CalculatedAsset
	FixedIncome []FixedIncomeView
	Loans       []LoanView

	EquityTotal      float64
	FixedIncomeTotal float64
	GrossAssets      float64
	DebtOutstanding  float64
	NetWorth         float64
	DividendsTTM     float64

	Skipped []string
}

// Review computes the portfolio review at the given date.
func (b *Book) Review(asOf date.Date) *Review {
	r := &Review{Date: asOf}
	rates := b.Rates
	if rates.IsZero() {
		rates = DefaultRates()
	}

	for _, p := range b.Positions {
		q, ok := b.Quote(p.Ticker)
		if !ok {
			r.Skipped = append(r.Skipped, fmt.Sprintf("position %s: no quote", p.Ticker))
			continue
		}
		a, ok := p.Calculate(q, asOf)
		if !ok {
			r.Skipped = append(r.Skipped, fmt.Sprintf("position %s: quote unusable", p.Ticker))
			continue
		}
		r.Assets = append(r.Assets, a)
		r.EquityTotal += a.CurrentValue
		r.DividendsTTM += a.DividendsTTM
	}

	for _, p := range b.FixedIncome {
		v, ok := p.CurrentValue(asOf, rates)
		if !ok {
			r.Skipped = append(r.Skipped, fmt.Sprintf("fixed income %s: not computable", p.Name))
			continue
		}
		r.FixedIncome = append(r.FixedIncome, FixedIncomeView{
			FixedIncomePosition: p,
			Valuation:           v,
			ProfitLoss:          v.Amount - p.Principal,
		})
		r.FixedIncomeTotal += v.Amount
	}

	for _, l := range b.Loans {
		snap, ok := l.Compute(asOf)
		if !ok {
			r.Skipped = append(r.Skipped, fmt.Sprintf("loan %s: not computable", l.Name))
			continue
		}
		r.Loans = append(r.Loans, LoanView{LoanContract: l, Snapshot: snap})
		r.DebtOutstanding += snap.OutstandingBalance
	}

	r.GrossAssets = r.EquityTotal + r.FixedIncomeTotal
	r.NetWorth = r.GrossAssets - r.DebtOutstanding

	// Weights only make sense against a positive total.
	if r.GrossAssets > 0 {
		for i := range r.Assets {
			r.Assets[i].Weight = Percent(r.Assets[i].CurrentValue / r.GrossAssets * 100)
		}
	}
	return r
}
