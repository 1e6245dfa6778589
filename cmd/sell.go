package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type sellCmd struct {
	symbol string
	shares float64
	all    bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares of a security" }
func (*sellCmd) Usage() string {
	return `fin sell -s <symbol> (-q <shares> | -all)

  Sells shares at the last known market price, crediting the proceeds
  to cash. Selling the whole position removes it.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to sell.")
	f.Float64Var(&c.shares, "q", 0, "Number of shares.")
	f.BoolVar(&c.all, "all", false, "Liquidate the whole position.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all && c.shares != 0 {
		fmt.Fprintln(os.Stderr, "Error: -q and -all cannot be used together.")
		return subcommands.ExitUsageError
	}

	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	now := finboard.Now()
	if c.all {
		err = book.Liquidate(now, c.symbol)
	} else {
		err = book.Sell(now, c.symbol, finboard.Q(c.shares))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %s. Cash balance is %s.\n", c.symbol, book.CashBalance())
	return saveBook(store, book)
}
