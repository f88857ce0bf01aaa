package renderer

import (
	"bytes"
	"fmt"

	"github.com/andrelq/carteira"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the full portfolio review.
func SummaryMarkdown(r *carteira.Review) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", r.Date))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net Worth"), md.Bold(brl(r.NetWorth))},
		Rows: [][]string{
			{"Equities", brl(r.EquityTotal)},
			{"Fixed Income", brl(r.FixedIncomeTotal)},
			{"Gross Assets", brl(r.GrossAssets)},
			{"Outstanding Debt", brl(-r.DebtOutstanding)},
			{"Dividends (12mo)", brl(r.DividendsTTM)},
		},
	})

	if len(r.Assets) > 0 {
		doc.H2("Positions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignLeft,
				md.AlignRight, md.AlignRight, md.AlignRight,
				md.AlignRight, md.AlignRight, md.AlignRight,
			},
			Header: []string{"Ticker", "Class", "Qty", "Price", "Value", "P/L", "Yield", "Weight"},
		}
		for _, a := range r.Assets {
			table.Rows = append(table.Rows, []string{
				a.Ticker,
				string(a.Class),
				fmt.Sprintf("%g", a.Quantity),
				brl(a.Price),
				brl(a.CurrentValue),
				a.ProfitLossPct.SignedString(),
				pct(a.DividendYield),
				pct(a.Weight),
			})
		}
		doc.Table(table)
	}

	if len(r.FixedIncome) > 0 {
		doc.H2("Fixed Income")
		doc.Table(fixedIncomeTable(r.FixedIncome))
	}

	if len(r.Loans) > 0 {
		doc.H2("Loans")
		doc.Table(loansTable(r.Loans))
	}

	if len(r.Skipped) > 0 {
		doc.H2("Skipped")
		doc.PlainText("Not included in any total:")
		doc.BulletList(r.Skipped...)
	}

	return doc.String()
}
