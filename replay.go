package delfos

import (
	"fmt"
	"sort"
)

// aggregate holds the running per-instrument totals of a replay.
//
// Cost, Proceeds and Income only ever grow: the cost basis of sold shares is
// never removed, so Cost is the all-time amount invested and Proceeds/Income
// the all-time amount realized.
type aggregate struct {
	Held     Quantity // shares currently held
	Bought   Quantity // all-time bought shares
	Cost     Money    // cumulative cost of all buys
	Proceeds Money    // cumulative sale proceeds
	Income   Money    // proceeds plus dividends
}

// apply folds one adjusted movement into the aggregate.
func (a aggregate) apply(m Movement) aggregate {
	switch m.Kind {
	case Buy:
		a.Held = a.Held.Add(m.Quantity)
		a.Bought = a.Bought.Add(m.Quantity)
		a.Cost = a.Cost.Add(m.Price.Mul(m.Quantity))
	case Sell:
		a.Held = a.Held.Sub(m.Quantity)
		a.Proceeds = a.Proceeds.Add(m.Price.Mul(m.Quantity))
		a.Income = a.Income.Add(m.Price.Mul(m.Quantity))
	case Dividend:
		a.Income = a.Income.Add(m.Amount)
	}
	return a
}

// datedAggregate is a copy of the running totals of one instrument as of one
// ledger date, taken immediately after that date's movements were applied.
type datedAggregate struct {
	On Date
	aggregate
}

// replayResult is the outcome of folding a movement list: final totals and a
// sparse dated snapshot series per instrument, plus the symbols that could
// not be resolved.
type replayResult struct {
	totals    map[string]aggregate
	snapshots map[string][]datedAggregate // chronological, one entry per movement date
	failed    map[string]struct{}         // symbols unresolvable as of the analysis date
	first     Date                        // date of the first replayed movement
}

// replay folds the movement list into per-instrument aggregates and dated
// snapshots as of the analysis date.
//
// The list is sorted chronologically first (same-day movements keep their
// list order). Movements dated after the analysis date are excluded: a book
// "as of" a past date must not see future trades. A movement whose symbol
// cannot be resolved is skipped and the symbol recorded as failed; a
// malformed movement rejects the whole replay.
//
// Replay is a pure fold: running it twice over the same list yields
// identical results, which the portfolio relies on since it re-runs the
// replay on every mutation.
func replay(movements []Movement, market Resolver, asOf Date) (*replayResult, error) {
	for _, m := range movements {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("replay rejected: %w", err)
		}
	}

	// Work on a sorted copy; the caller's list order is part of its state.
	sorted := make([]Movement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	r := &replayResult{
		totals:    make(map[string]aggregate),
		snapshots: make(map[string][]datedAggregate),
		failed:    make(map[string]struct{}),
	}

	for _, m := range sorted {
		if m.Date.After(asOf) {
			// The list is sorted, every remaining movement is in the future.
			break
		}

		inst, ok := market.Resolve(m.Security, asOf)
		if !ok {
			r.failed[m.Security] = struct{}{}
			continue
		}

		if r.first.IsZero() {
			r.first = m.Date
		}

		m = adjustForSplits(m, inst, asOf)

		total := r.totals[m.Security].apply(m)
		r.totals[m.Security] = total

		snaps := r.snapshots[m.Security]
		if n := len(snaps); n > 0 && snaps[n-1].On == m.Date {
			snaps[n-1].aggregate = total
		} else {
			snaps = append(snaps, datedAggregate{On: m.Date, aggregate: total})
		}
		r.snapshots[m.Security] = snaps
	}

	return r, nil
}
