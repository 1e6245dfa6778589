package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type recordCmd struct {
	date     string
	category string
	amount   float64
	desc     string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a manual transaction in the ledger" }
func (*recordCmd) Usage() string {
	return `fin record -category <category> -amount <amount> [-desc <text>] [-d <date>]

  Appends a transaction to the ledger. Positive amounts are income,
  negative amounts are expenses.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the transaction, defaults to now.")
	f.StringVar(&c.category, "category", "", "Category of the transaction.")
	f.Float64Var(&c.amount, "amount", 0, "Signed amount, negative for expenses.")
	f.StringVar(&c.desc, "desc", "", "Optional description.")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" {
		fmt.Fprintln(os.Stderr, "Error: -category is required.")
		return subcommands.ExitUsageError
	}
	if c.amount == 0 {
		fmt.Fprintln(os.Stderr, "Error: -amount must not be zero.")
		return subcommands.ExitUsageError
	}

	var date finboard.Time
	if c.date != "" {
		var err error
		if date, err = finboard.ParseTime(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	book.Record(date, c.category, finboard.USD(c.amount), c.desc)
	fmt.Printf("Recorded %s %s. Cash balance is %s.\n",
		c.category, finboard.USD(c.amount).SignedString(), book.CashBalance())
	return saveBook(store, book)
}
