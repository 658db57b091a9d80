package delfos

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies the nature of a ledger movement.
type Kind string

const (
	// Buy adds shares to a position and increases its cost.
	Buy Kind = "buy"
	// Sell removes shares from a position and realizes proceeds.
	Sell Kind = "sell"
	// Dividend credits realized cash income without moving shares.
	Dividend Kind = "dividend"
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Buy, Sell, Dividend:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown movement kind: %q", s)
	}
}

// Movement is a single normalized ledger entry: a buy, a sell, or a
// dividend/income event for one instrument.
//
// For dividends, Amount carries the realized cash and Quantity and Price are
// ignored for valuation purposes.
type Movement struct {
	Security string   `json:"security"` // instrument ticker symbol
	Kind     Kind     `json:"kind"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`  // price per unit
	Amount   Money    `json:"amount"` // signed settlement value
	Date     Date     `json:"date"`
}

// NewBuy creates a buy movement; the settlement amount is quantity times price.
func NewBuy(on Date, security string, quantity Quantity, price Money) Movement {
	return Movement{Security: security, Kind: Buy, Quantity: quantity, Price: price, Amount: price.Mul(quantity), Date: on}
}

// NewSell creates a sell movement; the settlement amount is quantity times price.
func NewSell(on Date, security string, quantity Quantity, price Money) Movement {
	return Movement{Security: security, Kind: Sell, Quantity: quantity, Price: price, Amount: price.Mul(quantity), Date: on}
}

// NewDividend creates a dividend movement for the given realized cash amount.
func NewDividend(on Date, security string, amount Money) Movement {
	return Movement{Security: security, Kind: Dividend, Amount: amount, Date: on}
}

// Validate checks the movement for correctness. A movement that fails
// validation is a malformed record: the whole replay that contains it must be
// rejected rather than silently dropping it.
func (m Movement) Validate() error {
	var errs error
	if m.Security == "" {
		errs = errors.Join(errs, errors.New("security ticker is missing"))
	}
	switch m.Kind {
	case Buy, Sell, Dividend:
	default:
		errs = errors.Join(errs, fmt.Errorf("movement kind must be %q, %q or %q, got %q", Buy, Sell, Dividend, m.Kind))
	}
	if m.Quantity.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("movement quantity must not be negative, got %s", m.Quantity))
	}
	if m.Price.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("movement price must not be negative, got %s", m.Price))
	}
	if m.Date.IsZero() {
		errs = errors.Join(errs, errors.New("movement date is missing"))
	}
	if errs != nil {
		return fmt.Errorf("invalid %s movement for %q: %w", m.Kind, m.Security, errs)
	}
	return nil
}

// Equal reports whether two movements carry the same values.
func (m Movement) Equal(o Movement) bool {
	return m.Security == o.Security &&
		m.Kind == o.Kind &&
		m.Quantity.Equal(o.Quantity) &&
		m.Price.Equal(o.Price) &&
		m.Amount.Equal(o.Amount) &&
		m.Date == o.Date
}

func (m Movement) String() string {
	switch m.Kind {
	case Dividend:
		return fmt.Sprintf("%s %s %s %s", m.Date.Ledger(), m.Kind, m.Security, m.Amount)
	default:
		return fmt.Sprintf("%s %s %s x%s @ %s", m.Date.Ledger(), m.Kind, m.Security, m.Quantity, m.Price)
	}
}

// UnmarshalJSON decodes a movement and rejects unparseable dates or kinds at
// the boundary, so that a decoded movement list only ever fails replay on
// range errors.
func (m *Movement) UnmarshalJSON(data []byte) error {
	type alias Movement // drop methods to avoid recursion
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if _, err := ParseKind(string(a.Kind)); err != nil {
		return err
	}
	*m = Movement(a)
	return nil
}
