package carteira

import (
	"fmt"
	"strings"

	"github.com/andrelq/carteira/date"
)

// AssetClass is the kind of listed asset a position holds.
type AssetClass string

const (
	ClassAcao AssetClass = "ACAO"
	ClassFII  AssetClass = "FII"
	ClassETF  AssetClass = "ETF"
	ClassBDR  AssetClass = "BDR"
)

// ParseAssetClass parses an asset class name, leniently.
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACAO", "AÇÃO", "STOCK":
		return ClassAcao, nil
	case "FII":
		return ClassFII, nil
	case "ETF":
		return ClassETF, nil
	case "BDR":
		return ClassBDR, nil
	default:
		return ClassAcao, fmt.Errorf("unknown asset class %q", s)
	}
}

// Position is one user-recorded listed holding (equity, FII, ETF or BDR).
type Position struct {
	Ticker       string
	Name         string
	Class        AssetClass
	Quantity     float64
	AveragePrice float64
}

// Invested returns the total amount paid for the position.
func (p Position) Invested() float64 { return p.Quantity * p.AveragePrice }

// DividendPayment is one per-share cash distribution.
type DividendPayment struct {
	Date   date.Date `json:"date"`
	Amount float64   `json:"amount"` // per share
}

// Quote is the market-data collaborator's answer for one ticker. A missing
// quote or a non-positive price makes the position not computable; it is
// never treated as worth zero.
type Quote struct {
	Ticker        string
	Price         float64
	PreviousClose float64
	Updated       date.Date
	Dividends     []DividendPayment // per-share payments, most recent first or not, order free
}

// CalculatedAsset is the read-only projection of a position enriched with a
// quote. It is derived on every read and never a source of truth.
type CalculatedAsset struct {
	Position
	Price         float64
	CurrentValue  float64
	ProfitLoss    float64
	ProfitLossPct Percent
	DividendsTTM  float64 // total received over the trailing twelve months
	DividendYield Percent // trailing twelve months, over the current price
	Weight        Percent // share of the portfolio's gross assets; set by Review
}

// Calculate combines the position with its quote at the given date. The
// boolean is false when the position has no quantity or the quote is unusable.
func (p Position) Calculate(q Quote, asOf date.Date) (CalculatedAsset, bool) {
	if p.Quantity <= 0 || q.Price <= 0 {
		return CalculatedAsset{}, false
	}

	a := CalculatedAsset{
		Position:     p,
		Price:        q.Price,
		CurrentValue: p.Quantity * q.Price,
	}
	if invested := p.Invested(); invested > 0 {
		a.ProfitLoss = a.CurrentValue - invested
		a.ProfitLossPct = Percent(a.ProfitLoss / invested * 100)
	}

	perShare := dividendsPerShareTTM(q.Dividends, asOf)
	a.DividendsTTM = perShare * p.Quantity
	a.DividendYield = Percent(perShare / q.Price * 100)
	return a, true
}

// dividendsPerShareTTM sums the per-share payments in the trailing twelve
// months ending at asOf.
func dividendsPerShareTTM(payments []DividendPayment, asOf date.Date) float64 {
	from := asOf.AddMonths(-12)
	var sum float64
	for _, d := range payments {
		if d.Date.After(from) && !d.Date.After(asOf) {
			sum += d.Amount
		}
	}
	return sum
}
