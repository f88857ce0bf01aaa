package renderer

import (
	"bytes"
	"fmt"

	"github.com/andrelq/carteira"
	md "github.com/nao1215/markdown"
)

// LoansMarkdown renders the loan contracts with their current snapshots.
func LoansMarkdown(views []carteira.LoanView) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Loans")
	if len(views) == 0 {
		doc.PlainText("No loan contracts recorded.")
		return doc.String()
	}
	doc.Table(loansTable(views))
	return doc.String()
}

func loansTable(views []carteira.LoanView) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft,
		},
		Header: []string{"Name", "Instalment", "Balance", "Remaining", "Payoff", "Source", "ID"},
	}
	for _, v := range views {
		table.Rows = append(table.Rows, []string{
			v.Name,
			brl(v.Snapshot.Instalment),
			brl(v.Snapshot.OutstandingBalance),
			months(v.Snapshot.RemainingMonths),
			v.Snapshot.PayoffDate.String(),
			v.Snapshot.Source.String(),
			v.ID.String(),
		})
	}
	return table
}

// ScheduleMarkdown renders the full amortization schedule of one contract.
func ScheduleMarkdown(c carteira.LoanContract) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Amortization Schedule: %s", c.Name))

	entries := c.Schedule()
	if entries == nil {
		doc.PlainText("The contract is missing the terms needed to compute a schedule.")
		return doc.String()
	}

	doc.PlainText(fmt.Sprintf("%s over %s at %g%% p.a., instalment %s.",
		brl(c.Principal), months(c.TermMonths), c.AnnualNominalRate, brl(c.Instalment())))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"#", "Due", "Interest", "Amortized", "Balance"},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", e.Period),
			e.DueDate.String(),
			brl(e.Interest),
			brl(e.Amortized),
			brl(e.Balance),
		})
	}
	doc.Table(table)
	return doc.String()
}
