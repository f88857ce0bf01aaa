package renderer

import (
	"bytes"
	"fmt"

	"github.com/andrelq/carteira"
	md "github.com/nao1215/markdown"
)

// FixedIncomeMarkdown renders the fixed-income holdings with their current
// valuations.
func FixedIncomeMarkdown(views []carteira.FixedIncomeView) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Fixed Income")
	if len(views) == 0 {
		doc.PlainText("No fixed-income holdings recorded.")
		return doc.String()
	}
	doc.Table(fixedIncomeTable(views))
	return doc.String()
}

func fixedIncomeTable(views []carteira.FixedIncomeView) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft,
		},
		Header: []string{"Name", "Type", "Rate", "Principal", "Value", "P/L", "Source"},
	}
	for _, v := range views {
		table.Rows = append(table.Rows, []string{
			v.Name,
			string(v.Type),
			rateLabel(v.FixedIncomePosition),
			brl(v.Principal),
			brl(v.Valuation.Amount),
			signedBRL(v.ProfitLoss),
			v.Valuation.Source.String(),
		})
	}
	return table
}

// rateLabel spells the contract the way it was sold: "110% of CDI",
// "CDI + 2%", "IPCA + 5.5%" or a plain prefixed rate.
func rateLabel(p carteira.FixedIncomePosition) string {
	if p.ContractedRate == nil {
		return string(p.Index)
	}
	r := *p.ContractedRate
	switch p.Index {
	case carteira.CDI:
		if r >= 20 {
			return fmt.Sprintf("%g%% of CDI", r)
		}
		return fmt.Sprintf("CDI + %g%%", r)
	case carteira.IPCA, carteira.IGPM:
		return fmt.Sprintf("%s + %g%%", p.Index, r)
	default:
		return fmt.Sprintf("%g%% p.a.", r)
	}
}
