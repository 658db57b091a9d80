package delfos

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the ledger as JSONL, one movement per line, so the file
// is human-readable, diffable and git-friendly. Dates are written in the
// broker's DD-MM-YYYY convention.

// DecodeMovements reads a JSONL stream of movements. Empty lines are skipped;
// a malformed line is a fatal decoding error, the ledger must not be half
// read.
func DecodeMovements(r io.Reader) ([]Movement, error) {
	var movements []Movement
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var m Movement
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("parse error on line %d %q: %w", line, string(b), err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("invalid movement on line %d: %w", line, err)
		}
		movements = append(movements, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	return movements, nil
}

// EncodeMovements writes movements as JSONL, one per line, in list order.
func EncodeMovements(w io.Writer, movements []Movement) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, m := range movements {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("cannot encode movement %s: %w", m, err)
		}
	}
	return bw.Flush()
}
