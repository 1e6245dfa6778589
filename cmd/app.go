// Package cmd implements the CLI application to manage a finboard.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&recordCmd{}, "ledger")
	c.Register(&txCmd{}, "ledger")

	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&updateCmd{}, "portfolio")

	c.Register(&borrowCmd{}, "loans")
	c.Register(&repayCmd{}, "loans")
	c.Register(&loansCmd{}, "loans")

	c.Register(&goalAddCmd{}, "goals")
	c.Register(&goalFundCmd{}, "goals")
	c.Register(&goalUpdateCmd{}, "goals")
	c.Register(&goalDeleteCmd{}, "goals")
	c.Register(&goalListCmd{}, "goals")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&networthCmd{}, "reports")
	c.Register(&convertCmd{}, "reports")

	c.Register(&runCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", defaultConfigPath(), "Path to the config file (YAML or JSON)")
	dataFile   = flag.String("data-file", "", "Path to the state file, overrides the config")
	force      = flag.Bool("force", false, "Allow saving over a corrupt state file")
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "finboard.yaml"
	}
	return filepath.Join(home, ".finboard", "config.yaml")
}

// appConfig loads the config file, falling back to defaults on a missing one.
func appConfig() finboard.Config {
	cfg, err := finboard.LoadConfig(*configFile)
	if err != nil {
		log.Printf("warning: %v, using defaults", err)
	}
	if env := os.Getenv("FINBOARD_DATA_FILE"); env != "" {
		cfg.DataFile = env
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	return cfg
}

// openBook loads the state file and credits any interest missed since the
// last tick. A corrupt state file is reported but not fatal: the recovered
// (or empty) book is returned and saves go to a recovery file unless -force
// was given.
func openBook() (*finboard.Store, *finboard.Book, error) {
	cfg := appConfig()
	store := finboard.NewStore(cfg.DataFile)
	if *force {
		store.ConfirmOverwrite()
	}

	now := finboard.Now()
	book, err := store.Load(now)
	if err != nil {
		if book == nil {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	book.SetInterestPerMinute(cfg.InterestMoney())

	if credited, minutes := book.CatchUp(now); minutes > 0 {
		fmt.Fprintf(os.Stderr, "Credited %s of interest for %d missed minutes.\n", credited, minutes)
	}
	return store, book, nil
}

// saveBook persists the book and reports the outcome as an exit status.
func saveBook(store *finboard.Store, book *finboard.Book) subcommands.ExitStatus {
	if err := store.Save(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
