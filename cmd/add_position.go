package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/carteira"
	"github.com/google/subcommands"
)

type addPositionCmd struct {
	ticker   string
	name     string
	class    string
	quantity float64
	avg      float64
}

func (*addPositionCmd) Name() string     { return "add-position" }
func (*addPositionCmd) Synopsis() string { return "record a listed position in the book" }
func (*addPositionCmd) Usage() string {
	return `add-position -ticker <ticker> -quantity <q> -avg <price> [-class <class>] [-name <name>]

  Records one listed holding:
  - ticker: The B3 ticker (e.g. "PETR4", "HGLG11"). Must be unique in the book.
  - quantity: Number of shares held.
  - avg: Average purchase price per share.
  - class: acao, fii, etf or bdr.

  Recording an existing ticker replaces the position, so updating after a
  purchase is the same command with the new totals.
`
}

func (c *addPositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "B3 ticker symbol (required)")
	f.StringVar(&c.name, "name", "", "Company or fund name")
	f.StringVar(&c.class, "class", "acao", "Asset class: acao, fii, etf or bdr")
	f.Float64Var(&c.quantity, "quantity", 0, "Number of shares (required)")
	f.Float64Var(&c.avg, "avg", 0, "Average price per share (required)")
}

func (c *addPositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.avg <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticker, a positive -quantity and a positive -avg are required.")
		return subcommands.ExitUsageError
	}
	class, err := carteira.ParseAssetClass(c.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	pos := carteira.Position{
		Ticker:       c.ticker,
		Name:         c.name,
		Class:        class,
		Quantity:     c.quantity,
		AveragePrice: c.avg,
	}
	replaced := false
	for i := range book.Positions {
		if book.Positions[i].Ticker == pos.Ticker {
			book.Positions[i] = pos
			replaced = true
			break
		}
	}
	if !replaced {
		book.Positions = append(book.Positions, pos)
	}

	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	if replaced {
		fmt.Printf("Updated position %s.\n", pos.Ticker)
	} else {
		fmt.Printf("Recorded position %s.\n", pos.Ticker)
	}
	return subcommands.ExitSuccess
}
