package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/delfos-invest/delfos"
	"github.com/google/subcommands"
)

// tradeCmd carries the flags shared by the 'buy' and 'sell' subcommands.
type tradeCmd struct {
	date     string
	security string
	quantity float64
	price    float64
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", delfos.Today().Ledger(), "Date of the trade (DD-MM-YYYY).")
	f.StringVar(&c.security, "s", "", "Ticker of the traded instrument.")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares.")
	f.Float64Var(&c.price, "p", 0, "Price per share.")
}

// execute runs the trade through the portfolio guards, then persists the
// accepted movement and the updated cash balance.
func (c *tradeCmd) execute(kind delfos.Kind) subcommands.ExitStatus {
	on, err := delfos.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var m delfos.Movement
	switch kind {
	case delfos.Buy:
		m = delfos.NewBuy(on, c.security, delfos.Q(c.quantity), delfos.M(c.price))
	case delfos.Sell:
		m = delfos.NewSell(on, c.security, delfos.Q(c.quantity), delfos.M(c.price))
	}

	p, err := LoadPortfolio(delfos.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	ok, reason, err := p.AppendMovement(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Rejected: %s\n", reason)
		return subcommands.ExitFailure
	}

	if err := AppendLedgerFile(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeCashFile(p.Cash()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing cash balance: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s, cash balance is %s\n", m, p.Cash())
	return subcommands.ExitSuccess
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of shares" }
func (*buyCmd) Usage() string {
	return `dlf buy -s <ticker> -q <quantity> -p <price> [-d <date>]

  Records a buy in the ledger. A buy dated today requires an open trading
  session and enough cash to settle.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(delfos.Buy)
}

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale of shares" }
func (*sellCmd) Usage() string {
	return `dlf sell -s <ticker> -q <quantity> -p <price> [-d <date>]

  Records a sell in the ledger. A sell dated today requires an open trading
  session and enough shares in the position.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(delfos.Sell)
}
