package carteira

import "testing"

func TestPositionCalculate(t *testing.T) {
	p := Position{Ticker: "PETR4", Class: ClassAcao, Quantity: 100, AveragePrice: 30}
	q := Quote{
		Ticker: "PETR4",
		Price:  38,
		Dividends: []DividendPayment{
			{Date: on(2025, 7, 15), Amount: 1.10},
			{Date: on(2025, 1, 20), Amount: 0.90},
			{Date: on(2024, 6, 1), Amount: 5.00}, // older than twelve months
		},
	}

	a, ok := p.Calculate(q, on(2025, 8, 30))
	if !ok {
		t.Fatal("expected a computable position")
	}
	almost(t, "current value", a.CurrentValue, 3800, 1e-9)
	almost(t, "profit loss", a.ProfitLoss, 800, 1e-9)
	almost(t, "profit loss pct", float64(a.ProfitLossPct), 26.666666, 1e-4)
	almost(t, "dividends ttm", a.DividendsTTM, 200, 1e-9)
	almost(t, "dividend yield", float64(a.DividendYield), 2.0/38*100, 1e-9)
}

func TestPositionCalculateNotComputable(t *testing.T) {
	asOf := on(2025, 8, 30)
	cases := []struct {
		name string
		pos  Position
		q    Quote
	}{
		{"no quote", Position{Ticker: "NOQT3", Quantity: 10, AveragePrice: 5}, Quote{}},
		{"zero price", Position{Ticker: "NOQT3", Quantity: 10, AveragePrice: 5}, Quote{Ticker: "NOQT3"}},
		{"negative price", Position{Ticker: "NOQT3", Quantity: 10, AveragePrice: 5}, Quote{Ticker: "NOQT3", Price: -1}},
		{"no quantity", Position{Ticker: "PETR4"}, Quote{Ticker: "PETR4", Price: 38}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := c.pos.Calculate(c.q, asOf); ok {
				t.Error("expected not computable")
			}
		})
	}
}

func TestPositionCalculateFreeShares(t *testing.T) {
	// Shares received for free have no invested amount; P&L is left at zero
	// rather than reported as an infinite gain.
	p := Position{Ticker: "BONUS3", Quantity: 10, AveragePrice: 0}
	a, ok := p.Calculate(Quote{Ticker: "BONUS3", Price: 12}, on(2025, 8, 30))
	if !ok {
		t.Fatal("expected a computable position")
	}
	almost(t, "current value", a.CurrentValue, 120, 1e-9)
	almost(t, "profit loss", a.ProfitLoss, 0, 1e-9)
	almost(t, "profit loss pct", float64(a.ProfitLossPct), 0, 1e-9)
}

func TestParseAssetClass(t *testing.T) {
	cases := []struct {
		in   string
		want AssetClass
		err  bool
	}{
		{"acao", ClassAcao, false},
		{"AÇÃO", ClassAcao, false},
		{" fii ", ClassFII, false},
		{"etf", ClassETF, false},
		{"BDR", ClassBDR, false},
		{"crypto", ClassAcao, true},
	}
	for _, c := range cases {
		got, err := ParseAssetClass(c.in)
		if c.err != (err != nil) {
			t.Errorf("ParseAssetClass(%q): err = %v", c.in, err)
			continue
		}
		if !c.err && got != c.want {
			t.Errorf("ParseAssetClass(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
