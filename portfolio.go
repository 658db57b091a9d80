package delfos

import (
	"fmt"
	"iter"
	"slices"
)

// Portfolio is the full book: cash plus all positions, reconstructed from the
// movement list as of the session's analysis date.
//
// Every structural mutation re-runs the replay from scratch; there is no
// incremental state to invalidate. Concurrent mutation is not supported, the
// caller must serialize access.
type Portfolio struct {
	session *Session
	market  Resolver

	cash      Money
	movements []Movement

	positions map[string]*Position
	order     []string // tickers, sorted, for deterministic iteration
	failed    map[string]struct{}
	history   *Valuation
}

// NewPortfolio reconstructs a book from an opening cash balance and a
// movement list. The list need not be sorted. A malformed movement is fatal;
// an unresolvable symbol is recorded and skipped.
func NewPortfolio(session *Session, market Resolver, cash Money, movements []Movement) (*Portfolio, error) {
	if session == nil {
		session = NewSession()
	}
	if cash.IsNegative() {
		return nil, fmt.Errorf("opening cash %s is negative", cash)
	}
	p := &Portfolio{
		session:   session,
		market:    market,
		cash:      cash,
		movements: slices.Clone(movements),
	}
	if err := p.rebuild(); err != nil {
		return nil, err
	}
	return p, nil
}

// rebuild re-derives positions and the combined valuation series from the
// movement list. Called after every structural mutation.
func (p *Portfolio) rebuild() error {
	r, err := replay(p.movements, p.market, p.session.On())
	if err != nil {
		return err
	}

	p.positions = make(map[string]*Position, len(r.totals))
	p.order = p.order[:0]
	p.failed = r.failed

	tables := make([]*Valuation, 0, len(r.totals))
	for ticker, total := range r.totals {
		inst, ok := p.market.Resolve(ticker, p.session.On())
		if !ok {
			p.failed[ticker] = struct{}{}
			continue
		}
		pos := newPosition(inst, total, r.snapshots[ticker], p.session.On())
		p.positions[ticker] = pos
		p.order = append(p.order, ticker)
		tables = append(tables, pos.History())
	}
	slices.Sort(p.order)

	p.history = sumValuations(tables...)
	return nil
}

// On returns the analysis date the book is computed as of.
func (p *Portfolio) On() Date { return p.session.On() }

// Cash returns the current cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Movements returns a copy of the raw movement list, including movements of
// failed symbols: a later session where the symbol resolves can still
// reconstruct them.
func (p *Portfolio) Movements() []Movement { return slices.Clone(p.movements) }

// Position returns the position held in a ticker, if any.
func (p *Portfolio) Position(ticker string) (*Position, bool) {
	pos, ok := p.positions[ticker]
	return pos, ok
}

// Positions iterates over the book's positions in ticker order.
func (p *Portfolio) Positions() iter.Seq[*Position] {
	return func(yield func(*Position) bool) {
		for _, ticker := range p.order {
			if !yield(p.positions[ticker]) {
				return
			}
		}
	}
}

// FailedSymbols returns, sorted, the symbols referenced by a movement but not
// resolvable as of the analysis date.
func (p *Portfolio) FailedSymbols() []string {
	out := make([]string, 0, len(p.failed))
	for ticker := range p.failed {
		out = append(out, ticker)
	}
	slices.Sort(out)
	return out
}

// History returns the combined valuation series, summed across positions.
func (p *Portfolio) History() *Valuation { return p.history }

// TotalCost returns the cumulative cost of every buy in the book.
func (p *Portfolio) TotalCost() Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pos.TotalCost())
	}
	return total
}

// TotalIncome returns the book's realized income: sale proceeds plus dividends.
func (p *Portfolio) TotalIncome() Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pos.TotalIncome())
	}
	return total
}

// TotalProceeds returns the book's cumulative sale proceeds.
func (p *Portfolio) TotalProceeds() Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pos.TotalProceeds())
	}
	return total
}

// TotalDividends returns the book's cumulative dividend income.
func (p *Portfolio) TotalDividends() Money { return p.TotalIncome().Sub(p.TotalProceeds()) }

// HeldSharesCost returns the cost, at average cost, of every share still held.
func (p *Portfolio) HeldSharesCost() Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pos.HeldSharesCost())
	}
	return total
}

// HeldSharesValue returns the market value of every share still held.
func (p *Portfolio) HeldSharesValue() Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pos.HeldSharesValue())
	}
	return total
}

// HeldSharesChange returns the unrealized change on the shares still held.
func (p *Portfolio) HeldSharesChange() Money {
	return p.HeldSharesValue().Sub(p.HeldSharesCost())
}

// HeldSharesReturn returns the unrealized return on the shares still held,
// or zero when their cost is zero.
func (p *Portfolio) HeldSharesReturn() Percent {
	cost := p.HeldSharesCost()
	if !cost.IsPositive() {
		return 0
	}
	return Percent(p.HeldSharesChange().AsFloat() / cost.AsFloat())
}

// TotalChange returns the book's all-time change, summed across positions.
func (p *Portfolio) TotalChange() Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pos.TotalChange())
	}
	return total
}

// TotalReturn returns the book's all-time return, or zero when nothing was
// ever invested.
func (p *Portfolio) TotalReturn() Percent {
	cost := p.TotalCost()
	if !cost.IsPositive() {
		return 0
	}
	return Percent(p.TotalChange().AsFloat() / cost.AsFloat())
}

// AddCash deposits cash into the book. The amount must not be negative.
func (p *Portfolio) AddCash(amount Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("cannot deposit %s: amount is negative", amount)
	}
	p.cash = p.cash.Add(amount)
	return nil
}

// WithdrawCash takes cash out of the book. The amount must not be negative
// nor exceed the balance.
func (p *Portfolio) WithdrawCash(amount Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("cannot withdraw %s: amount is negative", amount)
	}
	if p.cash.LessThan(amount) {
		return fmt.Errorf("cannot withdraw %s: balance is %s", amount, p.cash)
	}
	p.cash = p.cash.Sub(amount)
	return nil
}

// AppendMovement records a new buy or sell and re-derives the whole book.
//
// Business-rule rejections (future date, session not live, insufficient cash
// or shares) come back as (false, reason) with the book unchanged; the error
// is reserved for malformed movements. A movement dated strictly before the
// analysis date is accepted unconditionally and does not touch cash: its cash
// effect is assumed already reflected in the opening balance. A movement on
// the analysis date itself requires a live session and settles against cash.
func (p *Portfolio) AppendMovement(m Movement) (bool, string, error) {
	if err := m.Validate(); err != nil {
		return false, "", err
	}
	if m.Kind == Dividend {
		return false, "dividends are credited by the ledger import, not appended by hand", nil
	}
	if m.Date.After(p.session.On()) {
		return false, fmt.Sprintf("movement dated %s is after the session date %s", m.Date, p.session.On()), nil
	}

	sameDay := m.Date == p.session.On()
	if sameDay {
		if !p.session.IsLive() {
			return false, fmt.Sprintf("session %s is not live, cannot trade on it", p.session.On()), nil
		}
		settlement := m.Price.Mul(m.Quantity)
		switch m.Kind {
		case Buy:
			if p.cash.LessThan(settlement) {
				return false, fmt.Sprintf("insufficient cash: %s needed, %s available", settlement, p.cash), nil
			}
		case Sell:
			pos, ok := p.positions[m.Security]
			if !ok || pos.Quantity().LessThan(m.Quantity) {
				var held Quantity
				if ok {
					held = pos.Quantity()
				}
				return false, fmt.Sprintf("insufficient shares: %s %s needed, %s held", m.Quantity, m.Security, held), nil
			}
		}
	}

	p.movements = append(p.movements, m)
	if err := p.rebuild(); err != nil {
		p.movements = p.movements[:len(p.movements)-1]
		return false, "", err
	}

	if sameDay {
		settlement := m.Price.Mul(m.Quantity)
		if m.Kind == Buy {
			p.cash = p.cash.Sub(settlement)
		} else {
			p.cash = p.cash.Add(settlement)
		}
	}
	return true, "", nil
}
