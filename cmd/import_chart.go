package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/delfos-invest/delfos"
	"github.com/google/subcommands"
)

// importChartCmd holds the flags for the 'import-chart' subcommand.
type importChartCmd struct {
	file string
}

func (*importChartCmd) Name() string     { return "import-chart" }
func (*importChartCmd) Synopsis() string { return "import a downloaded chart payload into the market data" }
func (*importChartCmd) Usage() string {
	return `dlf import-chart [-f <payload.json>]

  Parses a previously downloaded chart payload (the JSON served by the usual
  quote endpoints) and merges its prices, volumes and splits into the market
  data file. Reads stdin when -f is omitted.
`
}

func (c *importChartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Chart payload file. Defaults to stdin.")
}

func (c *importChartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var in io.Reader = os.Stdin
	if c.file != "" {
		r, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening payload: %v\n", err)
			return subcommands.ExitFailure
		}
		defer r.Close()
		in = r
	}

	imported, err := delfos.ImportChart(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing chart: %v\n", err)
		return subcommands.ExitFailure
	}

	market, err := DecodeMarketFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market data: %v\n", err)
		return subcommands.ExitFailure
	}

	// Merge into the known instrument when there is one, so an import never
	// erases history the payload does not cover.
	if existing := market.Get(imported.Ticker()); existing != nil {
		for on, price := range imported.Prices().Values() {
			existing.Prices().Append(on, price)
		}
		for on, volume := range imported.Volumes().Values() {
			existing.Volumes().Append(on, volume)
		}
		for _, split := range imported.Splits() {
			existing.AddSplit(split)
		}
	} else {
		market.Add(imported)
	}

	if err := EncodeMarketFile(market); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing market data: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d prices for %s\n", imported.Prices().Len(), imported.Ticker())
	return subcommands.ExitSuccess
}
