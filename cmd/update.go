package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/carteira/bcb"
	"github.com/andrelq/carteira/brapi"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh quotes and reference rates from the market"
}
func (*updateCmd) Usage() string {
	return `update

  Fetches a fresh quote for every recorded position from brapi.dev and the
  current CDI, Selic and IPCA references from the Banco Central, and stores
  them in the book. The BRAPI_TOKEN environment variable holds the API token
  (a .env file next to the book works too).
`
}

func (*updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	token := os.Getenv("BRAPI_TOKEN")
	fetched := 0
	for _, p := range book.Positions {
		q, err := brapi.FetchQuote(token, p.Ticker)
		if err != nil {
			if errors.Is(err, brapi.ErrQuoteUnavailable) {
				fmt.Fprintf(os.Stderr, "Warning: no quote for %s, keeping the previous one.\n", p.Ticker)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: cannot fetch %s: %v\n", p.Ticker, err)
			}
			continue
		}
		book.SetQuote(q)
		fetched++
	}

	book.Rates = bcb.FetchRates()

	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %d/%d quotes; CDI %.2f%%, Selic %.2f%%, IPCA %.2f%%.\n",
		fetched, len(book.Positions), book.Rates.CDI, book.Rates.Selic, book.Rates.Inflation)
	return subcommands.ExitSuccess
}
