package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type buyCmd struct {
	symbol string
	shares float64
	price  float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a security" }
func (*buyCmd) Usage() string {
	return `fin buy -s <symbol> -q <shares> -p <price>

  Purchases shares at the given price, debiting cash. The average cost
  of an existing position is blended with the new purchase.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to buy.")
	f.Float64Var(&c.shares, "q", 0, "Number of shares.")
	f.Float64Var(&c.price, "p", 0, "Price per share.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := book.Buy(finboard.Now(), c.symbol, finboard.Q(c.shares), finboard.USD(c.price)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	h, _ := book.Holding(c.symbol)
	fmt.Printf("Bought %s of %s at %s, position is %s shares (avg %s).\n",
		finboard.Q(c.shares), c.symbol, finboard.USD(c.price), h.Shares, h.AvgPrice)
	return saveBook(store, book)
}
