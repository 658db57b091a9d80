package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/delfos-invest/delfos"
	"github.com/google/subcommands"
)

// cashCmd carries the flag shared by the 'deposit' and 'withdraw' subcommands.
type cashCmd struct {
	amount float64
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount of cash.")
}

// execute moves cash in or out through the portfolio guards and persists the
// new balance.
func (c *cashCmd) execute(deposit bool) subcommands.ExitStatus {
	p, err := LoadPortfolio(delfos.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	amount := delfos.M(c.amount)
	if deposit {
		err = p.AddCash(amount)
	} else {
		err = p.WithdrawCash(amount)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rejected: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeCashFile(p.Cash()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing cash balance: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Cash balance is %s\n", p.Cash())
	return subcommands.ExitSuccess
}

type depositCmd struct{ cashCmd }

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add cash to the book" }
func (*depositCmd) Usage() string {
	return `dlf deposit -a <amount>

  Adds cash to the book's balance.
`
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(true)
}

type withdrawCmd struct{ cashCmd }

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "take cash out of the book" }
func (*withdrawCmd) Usage() string {
	return `dlf withdraw -a <amount>

  Takes cash out of the book's balance. The balance never goes negative.
`
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(false)
}
