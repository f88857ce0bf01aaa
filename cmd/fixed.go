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

type fixedCmd struct {
	date string
}

func (*fixedCmd) Name() string     { return "fixed" }
func (*fixedCmd) Synopsis() string { return "list the fixed-income holdings with their valuations" }
func (*fixedCmd) Usage() string {
	return `fixed [-d <date>]

  Lists every fixed-income holding with its estimated or manual current
  value. Estimates compound today's reference rates over the elapsed days.
`
}

func (c *fixedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", carteira.Today().String(), "Date to value the holdings on, YYYY-MM-DD.")
}

func (c *fixedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var views []carteira.FixedIncomeView
	for _, p := range book.FixedIncome {
		v, ok := p.CurrentValue(on, book.Rates)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: holding %q is missing data, skipped.\n", p.Name)
			continue
		}
		views = append(views, carteira.FixedIncomeView{
			FixedIncomePosition: p,
			Valuation:           v,
			ProfitLoss:          v.Amount - p.Principal,
		})
	}

	printMarkdown(renderer.FixedIncomeMarkdown(views))
	return subcommands.ExitSuccess
}
