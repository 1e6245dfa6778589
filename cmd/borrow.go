package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type borrowCmd struct {
	amount   float64
	interest float64
	minutes  int
}

func (*borrowCmd) Name() string     { return "borrow" }
func (*borrowCmd) Synopsis() string { return "take out a loan" }
func (*borrowCmd) Usage() string {
	return `fin borrow -amount <amount> -interest <per-minute> -minutes <count>

  Credits the principal to cash and opens a loan that charges the given
  interest amount every minute for the given number of minutes.
`
}

func (c *borrowCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Principal to borrow.")
	f.Float64Var(&c.interest, "interest", 0, "Interest charged per minute.")
	f.IntVar(&c.minutes, "minutes", 0, "Duration of the loan in minutes.")
}

func (c *borrowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	loan, err := book.Borrow(finboard.Now(), finboard.USD(c.amount), finboard.USD(c.interest), c.minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Borrowed %s as loan %s. Cash balance is %s.\n",
		loan.Principal, loan.ID, book.CashBalance())
	return saveBook(store, book)
}
