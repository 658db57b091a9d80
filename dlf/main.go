// Command dlf manages a stock portfolio from the terminal: it records
// movements, imports market data, and reports valuations.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/delfos-invest/delfos/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI to the shell completion engine. Keep it in
// sync with cmd.Register.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"import-chart": {Flags: map[string]complete.Predictor{"f": predict.Files("*.json")}},
		"buy":          {Flags: tradeFlags()},
		"sell":         {Flags: tradeFlags()},
		"dividend": {Flags: map[string]complete.Predictor{
			"d": predict.Nothing, "s": predict.Nothing, "a": predict.Nothing,
		}},
		"deposit":  {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
		"withdraw": {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
		"summary":  {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
		"history": {Flags: map[string]complete.Predictor{
			"d": predict.Nothing, "s": predict.Nothing, "tail": predict.Nothing,
		}},
		"tx": {Flags: map[string]complete.Predictor{"tail": predict.Nothing}},
	},
	Flags: map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"market-file": predict.Files("*.jsonl"),
		"cash-file":   predict.Files("*.json"),
	},
}

func tradeFlags() map[string]complete.Predictor {
	return map[string]complete.Predictor{
		"d": predict.Nothing, "s": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing,
	}
}

func main() {
	completion.Complete("dlf")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
