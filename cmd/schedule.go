package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/andrelq/carteira/renderer"
	"github.com/google/subcommands"
)

type scheduleCmd struct {
	loan string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the amortization schedule of one loan" }
func (*scheduleCmd) Usage() string {
	return `schedule -loan <name or id>

  Displays the contract's full amortization table from its original terms:
  every instalment with its interest and principal split.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.loan, "loan", "", "Loan name or id (required)")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" {
		fmt.Fprintln(os.Stderr, "Error: -loan is required.")
		return subcommands.ExitUsageError
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, l := range book.Loans {
		if strings.EqualFold(l.Name, c.loan) || l.ID.String() == c.loan {
			printMarkdown(renderer.ScheduleMarkdown(l))
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no loan named %q in the book.\n", c.loan)
	return subcommands.ExitFailure
}
