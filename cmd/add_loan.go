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

type addLoanCmd struct {
	name       string
	principal  float64
	rate       float64
	term       int
	start      string
	instalment float64
	balance    float64
	remaining  int
	dueDay     int
}

func (*addLoanCmd) Name() string     { return "add-loan" }
func (*addLoanCmd) Synopsis() string { return "record an amortized loan contract in the book" }
func (*addLoanCmd) Usage() string {
	return `add-loan -name <name> -principal <amount> -rate <annual> -term <months> -start <date> [-instalment <amount>] [-balance <amount>] [-remaining <months>] [-due-day <day>]

  Records one amortized contract (price system, constant instalment):
  - rate: Nominal annual rate in percent, as quoted by Brazilian lenders.
  - instalment, balance, remaining: Values from the lender statement. When
    recorded they win over the derived figures.
  - due-day: Day of month the instalment is due; gates the monthly advance.
`
}

func (c *addLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Contract name (required)")
	f.Float64Var(&c.principal, "principal", 0, "Financed amount (required)")
	f.Float64Var(&c.rate, "rate", 0, "Nominal annual rate, percent")
	f.IntVar(&c.term, "term", 0, "Term in months (required)")
	f.StringVar(&c.start, "start", "", "Contract start date, YYYY-MM-DD (required)")
	f.Float64Var(&c.instalment, "instalment", 0, "Lender-reported instalment")
	f.Float64Var(&c.balance, "balance", 0, "Lender-reported outstanding balance")
	f.IntVar(&c.remaining, "remaining", -1, "Lender-reported remaining months")
	f.IntVar(&c.dueDay, "due-day", 0, "Day of month the instalment is due")
}

func (c *addLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.principal <= 0 || c.term <= 0 || c.start == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, a positive -principal, a positive -term and -start are required.")
		return subcommands.ExitUsageError
	}
	start, err := carteira.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -start: %v\n", err)
		return subcommands.ExitUsageError
	}

	contract := carteira.LoanContract{
		ID:                uuid.New(),
		Name:              c.name,
		Principal:         c.principal,
		AnnualNominalRate: c.rate,
		TermMonths:        c.term,
		StartDate:         start,
		KnownInstalment:   c.instalment,
		KnownBalance:      c.balance,
		DueDay:            c.dueDay,
	}
	if c.remaining >= 0 {
		contract.KnownRemainingMonths = &c.remaining
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	book.Loans = append(book.Loans, contract)
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded loan %s (%s).\n", contract.Name, contract.ID)
	return subcommands.ExitSuccess
}
