package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type repayCmd struct {
	id     string
	amount float64
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "pay down a loan" }
func (*repayCmd) Usage() string {
	return `fin repay -id <loan-id> -amount <amount>

  Pays the amount off the loan from cash. A fully repaid loan is closed.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the loan, see 'fin loans'.")
	f.Float64Var(&c.amount, "amount", 0, "Amount to repay.")
}

func (c *repayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := book.Repay(finboard.Now(), c.id, finboard.USD(c.amount)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if loan, ok := book.Loan(c.id); ok {
		fmt.Printf("Repaid %s, %s remaining on loan %s.\n", finboard.USD(c.amount), loan.Remaining, c.id)
	} else {
		fmt.Printf("Repaid %s, loan %s is closed.\n", finboard.USD(c.amount), c.id)
	}
	return saveBook(store, book)
}
