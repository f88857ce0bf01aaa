package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/carteira"
	"github.com/google/subcommands"
)

type advanceCmd struct{}

func (*advanceCmd) Name() string     { return "advance" }
func (*advanceCmd) Synopsis() string { return "run the monthly auto-advance over every loan" }
func (*advanceCmd) Usage() string {
	return `advance

  Simulates the payment of one instalment per contract: interest accrues on
  the current balance, the rest amortizes principal. Each contract moves at
  most once per calendar month and only after its due day, so the command is
  safe to run any number of times.
`
}

func (*advanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *advanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	advanced := book.AdvanceLoans(carteira.Today())
	if advanced == 0 {
		fmt.Println("No contract was due, nothing to advance.")
		return subcommands.ExitSuccess
	}

	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Advanced %d contract(s) by one month.\n", advanced)
	return subcommands.ExitSuccess
}
