package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh market prices for all positions" }
func (*updateCmd) Usage() string {
	return `fin update

  Fetches the current price of every security position. A symbol whose
  price cannot be fetched keeps its last known price.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quoter := finboard.NewYahooQuoter(appConfig().Timeout())
	if err := book.RefreshPrices(quoter); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some prices could not be fetched:\n%v\n", err)
	}

	for h := range book.Holdings() {
		if !h.IsCash() {
			fmt.Printf("%s: %s\n", h.Symbol, h.Price())
		}
	}
	return saveBook(store, book)
}
