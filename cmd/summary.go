package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/etnz/finboard/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	update bool
	recent int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the board overview" }
func (*summaryCmd) Usage() string {
	return `fin summary [-update] [-n <count>]

  Displays cash, portfolio, loans, goals and recent transactions.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "update", false, "Refresh market prices before the summary.")
	f.IntVar(&c.recent, "n", 10, "Number of recent transactions to include.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.update {
		quoter := finboard.NewYahooQuoter(appConfig().Timeout())
		if err := book.RefreshPrices(quoter); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if status := saveBook(store, book); status != subcommands.ExitSuccess {
			return status
		}
	}

	printMarkdown(renderer.Summary(book.NewSummary(finboard.Now(), c.recent)))
	return subcommands.ExitSuccess
}
