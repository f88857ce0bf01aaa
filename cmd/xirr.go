package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/andrelq/carteira"
	"github.com/google/subcommands"
)

type xirrCmd struct{}

func (*xirrCmd) Name() string     { return "xirr" }
func (*xirrCmd) Synopsis() string { return "compute the annual return of dated cash flows" }
func (*xirrCmd) Usage() string {
	return `xirr <date>:<amount> <date>:<amount> ...

  Computes the money-weighted annual return (XIRR) of the given flows.
  Outflows are negative, inflows positive:

  $ carteira xirr 2024-01-15:-10000 2025-08-30:11700

  At least two flows with opposite signs are needed, otherwise the rate is
  undefined and reported as such, never as 0%.
`
}

func (*xirrCmd) SetFlags(f *flag.FlagSet) {}

func (c *xirrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	flows, err := parseFlows(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rate, ok := carteira.XIRR(flows)
	if !ok {
		fmt.Println("XIRR is undefined for these flows: at least two flows with opposite signs are needed.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("XIRR: %.2f%% per year\n", rate*100)
	return subcommands.ExitSuccess
}

// parseFlows reads "date:amount" arguments.
func parseFlows(args []string) ([]carteira.CashFlow, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no cash flows given")
	}
	var flows []carteira.CashFlow
	for _, arg := range args {
		i := strings.LastIndex(arg, ":")
		if i < 0 {
			return nil, fmt.Errorf("invalid flow %q, want <date>:<amount>", arg)
		}
		d, err := carteira.ParseDate(arg[:i])
		if err != nil {
			return nil, fmt.Errorf("invalid date in flow %q: %w", arg, err)
		}
		amount, err := strconv.ParseFloat(arg[i+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in flow %q: %w", arg, err)
		}
		flows = append(flows, carteira.CashFlow{Date: d, Amount: amount})
	}
	return flows, nil
}
