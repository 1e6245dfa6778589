package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finboard/renderer"
	"github.com/google/subcommands"
)

type loansCmd struct{}

func (*loansCmd) Name() string     { return "loans" }
func (*loansCmd) Synopsis() string { return "list outstanding loans" }
func (*loansCmd) Usage() string {
	return `fin loans

  Lists the open loans with their remaining balance and minutes left.
`
}

func (c *loansCmd) SetFlags(f *flag.FlagSet) {}

func (c *loansCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Loans(book.Loans()))
	return subcommands.ExitSuccess
}
