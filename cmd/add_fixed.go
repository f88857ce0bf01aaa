package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andrelq/carteira"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type addFixedCmd struct {
	name      string
	typ       string
	index     string
	principal float64
	applied   string
	rate      float64
	hasRate   bool
	manual    float64
}

func (*addFixedCmd) Name() string     { return "add-fixed" }
func (*addFixedCmd) Synopsis() string { return "record a fixed-income holding in the book" }
func (*addFixedCmd) Usage() string {
	return `add-fixed -name <name> -principal <amount> -applied <date> -index <index> [-rate <rate>] [-type <type>] [-manual <value>]

  Records one fixed-income holding:
  - index: cdi, selic, ipca, igpm, pre or outro.
  - rate: The rate as the bank quotes it. For cdi, 110 means "110% of CDI"
    and 2 means "CDI + 2%". For ipca/igpm it is the spread. For pre it is the
    annual rate itself.
  - type: cdb, lci, lca, tesouro or outro.
  - manual: The current value from the bank statement; when set it always
    wins over the estimate.
`
}

func (c *addFixedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Holding name, e.g. \"CDB Banco X 110% CDI\" (required)")
	f.StringVar(&c.typ, "type", "cdb", "Instrument type: cdb, lci, lca, tesouro or outro")
	f.StringVar(&c.index, "index", "cdi", "Reference index: cdi, selic, ipca, igpm, pre or outro")
	f.Float64Var(&c.principal, "principal", 0, "Amount applied (required)")
	f.StringVar(&c.applied, "applied", "", "Application date, YYYY-MM-DD (required)")
	f.Float64Var(&c.rate, "rate", 0, "Contracted rate as quoted by the bank")
	f.Float64Var(&c.manual, "manual", 0, "Current value from the bank statement")
}

func (c *addFixedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.principal <= 0 || c.applied == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, a positive -principal and -applied are required.")
		return subcommands.ExitUsageError
	}
	applied, err := carteira.ParseDate(c.applied)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -applied: %v\n", err)
		return subcommands.ExitUsageError
	}
	typ, err := carteira.ParseInstrumentType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	index, err := carteira.ParseIndex(c.index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	pos := carteira.FixedIncomePosition{
		ID:                 uuid.New(),
		Name:               c.name,
		Type:               typ,
		Principal:          c.principal,
		ApplicationDate:    applied,
		Index:              index,
		ManualCurrentValue: c.manual,
	}
	// A flag left at zero means "no contracted rate", not "0%": a CDB at
	// "CDI + 0" must be recorded with an explicit tiny spread instead.
	if f.Lookup("rate") != nil {
		f.Visit(func(fl *flag.Flag) {
			if fl.Name == "rate" {
				c.hasRate = true
			}
		})
	}
	if c.hasRate {
		pos.ContractedRate = &c.rate
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	book.FixedIncome = append(book.FixedIncome, pos)
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded fixed income %s (%s).\n", pos.Name, pos.ID)
	return subcommands.ExitSuccess
}
