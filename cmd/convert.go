package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type convertCmd struct {
	amount float64
	from   string
	to     string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount between currencies" }
func (*convertCmd) Usage() string {
	return `fin convert -amount <amount> [-from <currency>] -to <currency>

  Converts an amount using the latest exchange rates. Rates are cached
  briefly, so a transient network failure falls back to the last table.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount to convert.")
	f.StringVar(&c.from, "from", finboard.BaseCurrency, "Source currency code.")
	f.StringVar(&c.to, "to", "", "Target currency code.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: -to is required.")
		return subcommands.ExitUsageError
	}

	rates := finboard.NewERAPI(appConfig().Timeout())
	amount := finboard.M(c.amount, c.from)
	converted, err := finboard.ConvertMoney(amount, c.to, rates)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s = %s\n", amount, converted)
	return subcommands.ExitSuccess
}
