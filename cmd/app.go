// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/delfos-invest/delfos"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importChartCmd{}, "market data")

	c.Register(&buyCmd{}, "movements")
	c.Register(&sellCmd{}, "movements")
	c.Register(&dividendCmd{}, "movements")
	c.Register(&depositCmd{}, "cash")
	c.Register(&withdrawCmd{}, "cash")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "movements.jsonl", "Path to the ledger file containing movements (JSONL format)")
var marketFile = flag.String("market-file", "market.jsonl", "Path to the market data file (JSONL format)")
var cashFile = flag.String("cash-file", "cash.json", "Path to the cash balance file")

// DecodeMarketFile loads the market data file, or an empty market when the
// file does not exist yet.
func DecodeMarketFile() (*delfos.Market, error) {
	f, err := os.Open(*marketFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, market data file does not exist, starting from an empty market")
		return delfos.NewMarket(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open market file %q: %w", *marketFile, err)
	}
	defer f.Close()
	return delfos.DecodeMarket(f)
}

// EncodeMarketFile writes the market data file back.
func EncodeMarketFile(market *delfos.Market) error {
	f, err := os.Create(*marketFile)
	if err != nil {
		return fmt.Errorf("cannot write market file %q: %w", *marketFile, err)
	}
	defer f.Close()
	return delfos.EncodeMarket(f, market)
}

// DecodeLedgerFile loads the movement list, or an empty one when the file
// does not exist yet.
func DecodeLedgerFile() ([]delfos.Movement, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return delfos.DecodeMovements(f)
}

// AppendLedgerFile appends one movement to the ledger file.
func AppendLedgerFile(m delfos.Movement) error {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return delfos.EncodeMovements(f, []delfos.Movement{m})
}

// jcash is the wire shape of the cash balance file.
type jcash struct {
	Cash delfos.Money `json:"cash"`
}

// DecodeCashFile loads the cash balance, zero when the file does not exist.
func DecodeCashFile() (delfos.Money, error) {
	b, err := os.ReadFile(*cashFile)
	if errors.Is(err, fs.ErrNotExist) {
		return delfos.M(0), nil
	}
	if err != nil {
		return delfos.M(0), fmt.Errorf("cannot open cash file %q: %w", *cashFile, err)
	}
	var jc jcash
	if err := json.Unmarshal(b, &jc); err != nil {
		return delfos.M(0), fmt.Errorf("cannot parse cash file %q: %w", *cashFile, err)
	}
	return jc.Cash, nil
}

// EncodeCashFile writes the cash balance file back.
func EncodeCashFile(cash delfos.Money) error {
	b, err := json.Marshal(jcash{Cash: cash})
	if err != nil {
		return err
	}
	return os.WriteFile(*cashFile, append(b, '\n'), 0644)
}

// LoadPortfolio rebuilds the book from the market, ledger and cash files, as
// of the given date.
func LoadPortfolio(on delfos.Date) (*delfos.Portfolio, error) {
	market, err := DecodeMarketFile()
	if err != nil {
		return nil, err
	}
	movements, err := DecodeLedgerFile()
	if err != nil {
		return nil, err
	}
	cash, err := DecodeCashFile()
	if err != nil {
		return nil, err
	}
	session := delfos.NewSessionAt(on, nil)
	return delfos.NewPortfolio(session, market, cash, movements)
}
