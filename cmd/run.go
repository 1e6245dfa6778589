package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/finboard"
	"github.com/google/subcommands"
)

type runCmd struct {
	update bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "keep the board ticking in the foreground" }
func (*runCmd) Usage() string {
	return `fin run [-update]

  Credits any missed interest, then ticks once per interval: cash
  interest first, then every loan. The state is saved after every tick.
  Stop with Ctrl-C.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "update", false, "Also refresh market prices on startup.")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := appConfig()
	store := finboard.NewStore(cfg.DataFile)
	if *force {
		store.ConfirmOverwrite()
	}

	book, err := store.Load(finboard.Now())
	if err != nil {
		if book == nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	book.SetInterestPerMinute(cfg.InterestMoney())

	quoter := finboard.NewYahooQuoter(cfg.Timeout())
	svc := finboard.NewService(book, store, quoter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.update {
		if err := svc.RefreshPrices(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	fmt.Printf("Ticking every %s, state in %s. Ctrl-C to stop.\n", cfg.TickDuration(), cfg.DataFile)
	scheduler := finboard.NewScheduler(svc, cfg.TickDuration())
	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
