package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type networthCmd struct{}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "print valuation minus outstanding debt" }
func (*networthCmd) Usage() string {
	return `fin networth

  Prints cash plus the market value of every position, minus the
  remaining balance of every loan.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {}

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Valuation: %s\n", book.Valuation())
	fmt.Printf("Net worth: %s\n", book.NetWorth())
	return subcommands.ExitSuccess
}
