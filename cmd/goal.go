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

type goalAddCmd struct {
	name     string
	target   float64
	category string
}

func (*goalAddCmd) Name() string     { return "goal-add" }
func (*goalAddCmd) Synopsis() string { return "create a savings goal" }
func (*goalAddCmd) Usage() string {
	return `fin goal-add -name <name> -target <amount> [-category <category>]

  Registers a named savings goal. Names are unique.
`
}

func (c *goalAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the goal.")
	f.Float64Var(&c.target, "target", 0, "Target amount.")
	f.StringVar(&c.category, "category", "", "Optional category label.")
}

func (c *goalAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := book.AddGoal(c.name, finboard.USD(c.target), c.category); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added goal %q with target %s.\n", c.name, finboard.USD(c.target))
	return saveBook(store, book)
}

type goalFundCmd struct {
	name   string
	amount float64
}

func (*goalFundCmd) Name() string     { return "goal-fund" }
func (*goalFundCmd) Synopsis() string { return "move cash into a savings goal" }
func (*goalFundCmd) Usage() string {
	return `fin goal-fund -name <name> -amount <amount>

  Contributes the amount from cash into the goal.
`
}

func (c *goalFundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the goal.")
	f.Float64Var(&c.amount, "amount", 0, "Amount to contribute.")
}

func (c *goalFundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := book.ContributeToGoal(finboard.Now(), c.name, finboard.USD(c.amount)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	g, _ := book.Goal(c.name)
	fmt.Printf("Funded %q with %s, now %s of %s.\n", c.name, finboard.USD(c.amount), g.Current, g.Target)
	return saveBook(store, book)
}

type goalUpdateCmd struct {
	name     string
	target   float64
	category string
}

func (*goalUpdateCmd) Name() string     { return "goal-update" }
func (*goalUpdateCmd) Synopsis() string { return "change the target of a savings goal" }
func (*goalUpdateCmd) Usage() string {
	return `fin goal-update -name <name> -target <amount> [-category <category>]

  Changes the target and category of an existing goal without touching
  its funds.
`
}

func (c *goalUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the goal.")
	f.Float64Var(&c.target, "target", 0, "New target amount.")
	f.StringVar(&c.category, "category", "", "New category label.")
}

func (c *goalUpdateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := book.UpdateGoal(c.name, finboard.USD(c.target), c.category); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated goal %q, target is %s.\n", c.name, finboard.USD(c.target))
	return saveBook(store, book)
}

type goalDeleteCmd struct {
	name string
}

func (*goalDeleteCmd) Name() string     { return "goal-delete" }
func (*goalDeleteCmd) Synopsis() string { return "delete a goal and return its funds to cash" }
func (*goalDeleteCmd) Usage() string {
	return `fin goal-delete -name <name>

  Removes the goal. Everything it holds is returned to cash.
`
}

func (c *goalDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the goal.")
}

func (c *goalDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := book.DeleteGoal(finboard.Now(), c.name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted goal %q. Cash balance is %s.\n", c.name, book.CashBalance())
	return saveBook(store, book)
}

type goalListCmd struct{}

func (*goalListCmd) Name() string     { return "goals" }
func (*goalListCmd) Synopsis() string { return "list savings goals" }
func (*goalListCmd) Usage() string {
	return `fin goals

  Lists the goals with their progress.
`
}

func (c *goalListCmd) SetFlags(f *flag.FlagSet) {}

func (c *goalListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Goals(book.Goals()))
	return subcommands.ExitSuccess
}
