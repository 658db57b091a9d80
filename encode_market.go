package delfos

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// This file persists market data as JSONL, one instrument per line, with the
// price and volume series keyed by ISO date. Like the ledger file it is meant
// to be human-readable and git-friendly.

// jinstrument is the wire shape of one instrument line.
type jinstrument struct {
	Ticker  string             `json:"ticker"`
	Company string             `json:"company,omitempty"`
	Sector  string             `json:"sector,omitempty"`
	Segment string             `json:"segment,omitempty"`
	Prices  map[string]float64 `json:"prices,omitempty"`
	Volumes map[string]float64 `json:"volumes,omitempty"`
	Splits  []Split            `json:"splits,omitempty"`
}

// DecodeMarket reads a JSONL stream of instruments into a Market.
func DecodeMarket(r io.Reader) (*Market, error) {
	market := NewMarket()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var ji jinstrument
		if err := json.Unmarshal(b, &ji); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", line, err)
		}
		if ji.Ticker == "" {
			return nil, fmt.Errorf("parse error on line %d: missing ticker", line)
		}
		if market.Has(ji.Ticker) {
			return nil, fmt.Errorf("parse error on line %d: ticker %q is already defined", line, ji.Ticker)
		}

		inst := NewInstrument(ji.Ticker, ji.Company, ji.Sector, ji.Segment)
		for day, price := range ji.Prices {
			on, err := ParseDate(day)
			if err != nil {
				return nil, fmt.Errorf("parse error on line %d, ticker %q: %w", line, ji.Ticker, err)
			}
			inst.Prices().Append(on, price)
		}
		for day, volume := range ji.Volumes {
			on, err := ParseDate(day)
			if err != nil {
				return nil, fmt.Errorf("parse error on line %d, ticker %q: %w", line, ji.Ticker, err)
			}
			inst.Volumes().Append(on, volume)
		}
		for _, split := range ji.Splits {
			inst.AddSplit(split)
		}
		market.Add(inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read market data: %w", err)
	}
	return market, nil
}

// EncodeMarket writes a Market as JSONL, one instrument per line, tickers in
// alphabetical order so the output is stable under re-encoding.
func EncodeMarket(w io.Writer, market *Market) error {
	var tickers []string
	for inst := range market.Instruments() {
		tickers = append(tickers, inst.Ticker())
	}
	slices.Sort(tickers)

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, ticker := range tickers {
		inst := market.Get(ticker)
		ji := jinstrument{
			Ticker:  inst.Ticker(),
			Company: inst.Company(),
			Sector:  inst.Sector(),
			Segment: inst.Segment(),
			Splits:  inst.Splits(),
		}
		if inst.Prices().Len() > 0 {
			ji.Prices = make(map[string]float64, inst.Prices().Len())
			for on, price := range inst.Prices().Values() {
				ji.Prices[on.String()] = price
			}
		}
		if inst.Volumes().Len() > 0 {
			ji.Volumes = make(map[string]float64, inst.Volumes().Len())
			for on, volume := range inst.Volumes().Values() {
				ji.Volumes[on.String()] = volume
			}
		}
		if err := enc.Encode(ji); err != nil {
			return fmt.Errorf("cannot encode instrument %q: %w", ticker, err)
		}
	}
	return bw.Flush()
}
