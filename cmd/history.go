package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/delfos-invest/delfos"
	"github.com/delfos-invest/delfos/renderer"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	date     string
	security string
	tail     int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily valuation series" }
func (*historyCmd) Usage() string {
	return `dlf history [-d <date>] [-s <ticker>] [-tail <n>]

  Displays the daily valuation series of the whole book, or of a single
  position with -s.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", delfos.Today().Ledger(), "Date to compute the series as of (DD-MM-YYYY).")
	f.StringVar(&c.security, "s", "", "Ticker to report on. Defaults to the whole book.")
	f.IntVar(&c.tail, "tail", 15, "Show only the last N rows.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := delfos.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	series := p.History()
	if c.security != "" {
		pos, ok := p.Position(c.security)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no position in %q\n", c.security)
			return subcommands.ExitFailure
		}
		series = pos.History()
	}

	printMarkdown(renderer.HistoryMarkdown(c.security, series, c.tail))
	return subcommands.ExitSuccess
}
