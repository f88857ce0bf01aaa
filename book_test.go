package carteira

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func demoBook() *Book {
	b := NewBook()
	b.Positions = []Position{
		{Ticker: "PETR4", Class: ClassAcao, Quantity: 100, AveragePrice: 30},
		{Ticker: "HGLG11", Class: ClassFII, Quantity: 50, AveragePrice: 160},
		{Ticker: "NOQT3", Class: ClassAcao, Quantity: 10, AveragePrice: 5},
	}
	b.SetQuote(Quote{Ticker: "PETR4", Price: 38, Updated: on(2025, 8, 29)})
	b.SetQuote(Quote{
		Ticker: "HGLG11", Price: 165, Updated: on(2025, 8, 29),
		Dividends: []DividendPayment{{Date: on(2025, 7, 15), Amount: 1.10}},
	})
	// NOQT3 has no quote on purpose.

	b.FixedIncome = []FixedIncomePosition{
		{
			ID: uuid.New(), Name: "CDB Banco X", Type: TypeCDB,
			Principal: 10000, ApplicationDate: on(2024, 1, 10),
			Index: CDI, ContractedRate: rate(110),
			ManualCurrentValue: 11500,
		},
		{
			ID: uuid.New(), Name: "Prefixado sem taxa", Type: TypeCDB,
			Principal: 5000, ApplicationDate: on(2024, 1, 10),
			Index: PreFixed, // no contracted rate: not computable
		},
	}

	b.Loans = []LoanContract{
		{
			ID: uuid.New(), Name: "Financiamento", Principal: 100000,
			AnnualNominalRate: 0, TermMonths: 100, StartDate: on(2025, 1, 10),
			KnownBalance: 80000,
		},
		{ID: uuid.New(), Name: "Contrato vazio"}, // not computable
	}
	return b
}

func TestBookReview_Totals(t *testing.T) {
	b := demoBook()
	r := b.Review(on(2025, 8, 30))

	if len(r.Assets) != 2 {
		t.Fatalf("Assets: got %d entries, want 2", len(r.Assets))
	}
	almost(t, "EquityTotal", r.EquityTotal, 100*38+50*165, 1e-9)
	almost(t, "FixedIncomeTotal", r.FixedIncomeTotal, 11500, 1e-9)
	almost(t, "GrossAssets", r.GrossAssets, r.EquityTotal+r.FixedIncomeTotal, 1e-9)
	almost(t, "DebtOutstanding", r.DebtOutstanding, 80000, 1e-9)
	almost(t, "NetWorth", r.NetWorth, r.GrossAssets-80000, 1e-9)
	almost(t, "DividendsTTM", r.DividendsTTM, 50*1.10, 1e-9)
}

func TestBookReview_SkipsNotComputable(t *testing.T) {
	b := demoBook()
	r := b.Review(on(2025, 8, 30))

	if len(r.Skipped) != 3 {
		t.Fatalf("Skipped: got %v, want 3 entries", r.Skipped)
	}
	for _, want := range []string{"NOQT3", "Prefixado sem taxa", "Contrato vazio"} {
		found := false
		for _, s := range r.Skipped {
			if strings.Contains(s, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("Skipped: no entry mentioning %q in %v", want, r.Skipped)
		}
	}
}

func TestBookReview_Weights(t *testing.T) {
	b := demoBook()
	r := b.Review(on(2025, 8, 30))

	var sum float64
	for _, a := range r.Assets {
		sum += float64(a.Weight)
	}
	// Equity weights plus the fixed-income share cover the gross assets.
	almost(t, "equity weights", sum, r.EquityTotal/r.GrossAssets*100, 1e-9)
}

func TestBookReview_EmptyBook(t *testing.T) {
	r := NewBook().Review(on(2025, 8, 30))
	if r.NetWorth != 0 || len(r.Skipped) != 0 {
		t.Errorf("empty book: NetWorth=%v Skipped=%v, want zeroes", r.NetWorth, r.Skipped)
	}
	for _, a := range r.Assets {
		if a.Weight != 0 {
			t.Errorf("weight on empty book: %v", a.Weight)
		}
	}
}

func TestBookReview_ValuationSources(t *testing.T) {
	b := demoBook()
	r := b.Review(on(2025, 8, 30))

	if len(r.FixedIncome) != 1 {
		t.Fatalf("FixedIncome: got %d entries, want 1", len(r.FixedIncome))
	}
	fi := r.FixedIncome[0]
	if fi.Valuation.Source != ValueManual {
		t.Errorf("valuation source: got %v, want %v", fi.Valuation.Source, ValueManual)
	}
	almost(t, "fixed income profit", fi.ProfitLoss, 1500, 1e-9)

	if len(r.Loans) != 1 {
		t.Fatalf("Loans: got %d entries, want 1", len(r.Loans))
	}
	if r.Loans[0].Snapshot.Source != BalanceFromLender {
		t.Errorf("balance source: got %v, want %v", r.Loans[0].Snapshot.Source, BalanceFromLender)
	}
}

func TestBookAdvanceLoans(t *testing.T) {
	b := NewBook()
	b.Loans = []LoanContract{
		{
			ID: uuid.New(), Name: "a", Principal: 12000, AnnualNominalRate: 12,
			TermMonths: 12, StartDate: on(2025, 1, 5), KnownBalance: 6000, DueDay: 10,
		},
		{ID: uuid.New(), Name: "vazio"},
	}

	if n := b.AdvanceLoans(on(2025, 8, 15)); n != 1 {
		t.Fatalf("first advance: got %d, want 1", n)
	}
	// Second call in the same month is a no-op.
	if n := b.AdvanceLoans(on(2025, 8, 20)); n != 0 {
		t.Fatalf("repeat advance: got %d, want 0", n)
	}
	if n := b.AdvanceLoans(on(2025, 9, 15)); n != 1 {
		t.Fatalf("next month advance: got %d, want 1", n)
	}
}

func TestBookLoanLookup(t *testing.T) {
	b := demoBook()
	id := b.Loans[0].ID
	if l := b.Loan(id); l == nil || l.Name != "Financiamento" {
		t.Fatalf("Loan(%s): got %v", id, l)
	}
	if l := b.Loan(uuid.New()); l != nil {
		t.Fatalf("Loan(random): got %v, want nil", l)
	}
}
