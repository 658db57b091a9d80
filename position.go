package delfos

import (
	"maps"
	"math"
	"slices"
)

// Position is the reconciled state and valuation history of one instrument
// within a portfolio.
//
// Its numeric fields are recomputed wholesale whenever the owning portfolio's
// movement list changes; only the instrument identity is stable. A position
// is owned exclusively by its portfolio and never shares mutable state.
type Position struct {
	instrument *Instrument

	quantity      Quantity
	averageCost   Money // per-unit average over the all-time bought quantity
	totalCost     Money
	totalIncome   Money // proceeds plus dividends
	totalProceeds Money
	currentPrice  Money // last known price as of the analysis date

	history *Valuation
}

// newPosition derives a position from an instrument's final aggregate and its
// dated snapshot series, as of the analysis date.
func newPosition(inst *Instrument, total aggregate, snaps []datedAggregate, asOf Date) *Position {
	p := &Position{
		instrument:    inst,
		quantity:      total.Held,
		totalCost:     total.Cost,
		totalIncome:   total.Income,
		totalProceeds: total.Proceeds,
	}
	// Dividend-only entries have no bought shares; their average cost is zero
	// rather than undefined.
	if total.Bought.IsPositive() {
		p.averageCost = total.Cost.Div(total.Bought)
	}
	if price, ok := inst.CurrentPrice(asOf); ok {
		p.currentPrice = M(price)
	}
	p.history = buildValuation(inst, snaps, asOf)
	return p
}

// Instrument returns the instrument this position is held in.
func (p *Position) Instrument() *Instrument { return p.instrument }

// Ticker returns the instrument's ticker symbol.
func (p *Position) Ticker() string { return p.instrument.Ticker() }

// Quantity returns the number of shares currently held.
func (p *Position) Quantity() Quantity { return p.quantity }

// IsActive reports whether any shares are still held.
func (p *Position) IsActive() bool { return p.quantity.IsPositive() }

// AverageCost returns the average price paid per share, over all shares ever
// bought (not only the ones still held).
func (p *Position) AverageCost() Money { return p.averageCost }

// TotalCost returns the cumulative cost of every buy, including the cost
// basis of shares sold since.
func (p *Position) TotalCost() Money { return p.totalCost }

// TotalIncome returns everything the position realized: sale proceeds plus
// dividends.
func (p *Position) TotalIncome() Money { return p.totalIncome }

// TotalProceeds returns the cumulative sale proceeds.
func (p *Position) TotalProceeds() Money { return p.totalProceeds }

// TotalDividends returns the cumulative dividend income.
func (p *Position) TotalDividends() Money { return p.totalIncome.Sub(p.totalProceeds) }

// SoldQuantity returns the number of shares sold since inception, implied
// from the cost basis and the current holding.
func (p *Position) SoldQuantity() Quantity {
	if !p.averageCost.IsPositive() {
		return Q(0)
	}
	return p.totalCost.DivPrice(p.averageCost).Sub(p.quantity)
}

// AverageSoldPrice returns the average price obtained per sold share, or zero
// when nothing was sold.
func (p *Position) AverageSoldPrice() Money {
	sold := p.SoldQuantity()
	if !sold.IsPositive() || !p.totalProceeds.IsPositive() {
		return M(0)
	}
	return p.totalProceeds.Div(sold)
}

// CurrentPrice returns the instrument's last known price as of the
// portfolio's analysis date.
func (p *Position) CurrentPrice() Money { return p.currentPrice }

// HeldSharesCost returns the cost of the shares still held, at average cost.
func (p *Position) HeldSharesCost() Money { return p.averageCost.Mul(p.quantity) }

// HeldSharesValue returns the market value of the shares still held.
func (p *Position) HeldSharesValue() Money { return p.currentPrice.Mul(p.quantity) }

// HeldSharesChange returns the unrealized change on the shares still held.
func (p *Position) HeldSharesChange() Money { return p.HeldSharesValue().Sub(p.HeldSharesCost()) }

// HeldSharesReturn returns the unrealized return on the shares still held,
// or zero when their cost is zero.
func (p *Position) HeldSharesReturn() Percent {
	cost := p.HeldSharesCost()
	if !cost.IsPositive() {
		return 0
	}
	return Percent(p.HeldSharesChange().AsFloat() / cost.AsFloat())
}

// TotalValue returns everything the position is and was worth: held shares at
// market plus all realized income.
func (p *Position) TotalValue() Money { return p.totalIncome.Add(p.HeldSharesValue()) }

// TotalChange returns the position's all-time change: total value minus total
// cost.
func (p *Position) TotalChange() Money { return p.TotalValue().Sub(p.totalCost) }

// TotalReturn returns the position's all-time return, or zero when nothing
// was ever invested.
func (p *Position) TotalReturn() Percent {
	if !p.totalCost.IsPositive() {
		return 0
	}
	return Percent(p.TotalChange().AsFloat() / p.totalCost.AsFloat())
}

// History returns the position's valuation series. The table is owned by the
// position and rebuilt whenever the portfolio's movement list changes.
func (p *Position) History() *Valuation { return p.history }

// buildValuation merges the instrument's sparse movement-derived snapshots
// with its trading calendar: the row set is the union of snapshot dates and
// price dates from the first movement to the analysis date, with aggregates
// and prices forward-filled from the last known value. Days before the first
// known price mark as missing.
func buildValuation(inst *Instrument, snaps []datedAggregate, asOf Date) *Valuation {
	if len(snaps) == 0 {
		return newValuation(0)
	}
	first := snaps[0].On

	set := make(map[Date]struct{})
	for _, s := range snaps {
		set[s.On] = struct{}{}
	}
	for on := range inst.Prices().Values() {
		if !on.Before(first) && !on.After(asOf) {
			set[on] = struct{}{}
		}
	}
	days := slices.SortedFunc(maps.Keys(set), Date.Compare)

	v := newValuation(len(days))
	copy(v.days, days)

	si := 0
	var agg aggregate
	for i, on := range days {
		// Forward-fill the aggregate from the last snapshot on or before this day.
		for si < len(snaps) && !snaps[si].On.After(on) {
			agg = snaps[si].aggregate
			si++
		}
		price := math.NaN()
		if last, ok := inst.PriceAsOf(on); ok {
			price = last
		}

		held := agg.Held.AsFloat()
		v.MarkValue[i] = price*held + agg.Income.AsFloat()
		v.MarkValueExIncome[i] = price * held
		v.Cost[i] = agg.Cost.AsFloat()
	}

	v.derive()
	return v
}
