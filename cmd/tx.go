package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/delfos-invest/delfos/renderer"
	"github.com/google/subcommands"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the movements in the ledger" }
func (*txCmd) Usage() string {
	return `dlf tx [-tail <n>]

  Lists the movements recorded in the ledger file, in file order.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "tail", 0, "Show only the last N movements.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	movements, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.tail > 0 && len(movements) > c.tail {
		movements = movements[len(movements)-c.tail:]
	}
	printMarkdown(renderer.MovementsMarkdown(movements))
	return subcommands.ExitSuccess
}
