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

type txCmd struct {
	tail     int
	category string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `fin tx [-n <count>] [-category <category>]

  Lists ledger transactions, most recent first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "n", 20, "Show only the last N transactions, 0 for all.")
	f.StringVar(&c.category, "category", "", "Show only this category.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ledger := book.Ledger()
	var txs []finboard.Transaction
	if c.category != "" {
		for _, tx := range ledger.Transactions(finboard.ByCategory(c.category)) {
			txs = append(txs, tx)
		}
		// most recent first, like Recent
		for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
			txs[i], txs[j] = txs[j], txs[i]
		}
		if c.tail > 0 && len(txs) > c.tail {
			txs = txs[:c.tail]
		}
	} else {
		n := c.tail
		if n <= 0 {
			n = ledger.Len()
		}
		txs = ledger.Recent(n)
	}

	printMarkdown(renderer.Transactions(txs))
	return subcommands.ExitSuccess
}
