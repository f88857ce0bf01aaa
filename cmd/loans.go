package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/carteira"
	"github.com/andrelq/carteira/renderer"
	"github.com/google/subcommands"
)

type loansCmd struct {
	date string
}

func (*loansCmd) Name() string     { return "loans" }
func (*loansCmd) Synopsis() string { return "list the loan contracts with their current state" }
func (*loansCmd) Usage() string {
	return `loans [-d <date>]

  Lists every recorded contract with its instalment, outstanding balance,
  remaining months and payoff date. The source column tells whether the
  figures are derived from the contract terms or lender-reported.
`
}

func (c *loansCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", carteira.Today().String(), "Date to evaluate the contracts on, YYYY-MM-DD.")
}

func (c *loansCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := carteira.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	var views []carteira.LoanView
	for _, l := range book.Loans {
		snap, ok := l.Compute(on)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: loan %q is missing terms, skipped.\n", l.Name)
			continue
		}
		views = append(views, carteira.LoanView{LoanContract: l, Snapshot: snap})
	}

	printMarkdown(renderer.LoansMarkdown(views))
	return subcommands.ExitSuccess
}
