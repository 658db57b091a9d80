package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/delfos-invest/delfos"
	"github.com/google/subcommands"
)

// dividendCmd holds the flags for the 'dividend' subcommand.
type dividendCmd struct {
	date     string
	security string
	amount   float64
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `dlf dividend -s <ticker> -a <amount> [-d <date>]

  Records a dividend in the ledger. Dividends carry no trading guard, they
  are credited as received.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", delfos.Today().Ledger(), "Date of the payment (DD-MM-YYYY).")
	f.StringVar(&c.security, "s", "", "Ticker of the paying instrument.")
	f.Float64Var(&c.amount, "a", 0, "Amount received.")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := delfos.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	m := delfos.NewDividend(on, c.security, delfos.M(c.amount))
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if err := AppendLedgerFile(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s\n", m)
	return subcommands.ExitSuccess
}
