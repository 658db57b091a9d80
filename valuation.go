package delfos

import (
	"iter"
	"math"
	"maps"
	"slices"
)

// Valuation is a dated table of per-day portfolio metrics. The first three
// columns (MarkValue, MarkValueExIncome, Cost) are primary; the flow and
// return columns are derived from them by derive().
//
// Cells use float64 with NaN standing for "missing": a date before the first
// known price, or a return whose denominator is zero. Missing cells are
// reported as such, never as errors.
type Valuation struct {
	days []Date

	MarkValue         []float64 // market value of held shares plus realized income
	MarkValueExIncome []float64 // market value of held shares only
	Cost              []float64 // cumulative cost basis
	CashFlow          []float64 // day-over-day cost delta (first row: the cost itself)
	DailyChangeWithCF []float64 // day-over-day mark value delta
	DailyChange       []float64 // mark value delta net of the day's cash flow
	TotalChange       []float64 // mark value minus cost
	DailyReturn       []float64
	TotalReturn       []float64
}

func newValuation(n int) *Valuation {
	return &Valuation{
		days:              make([]Date, n),
		MarkValue:         make([]float64, n),
		MarkValueExIncome: make([]float64, n),
		Cost:              make([]float64, n),
		CashFlow:          make([]float64, n),
		DailyChangeWithCF: make([]float64, n),
		DailyChange:       make([]float64, n),
		TotalChange:       make([]float64, n),
		DailyReturn:       make([]float64, n),
		TotalReturn:       make([]float64, n),
	}
}

// Len returns the number of rows in the table.
func (v *Valuation) Len() int { return len(v.days) }

// Day returns the date of row i.
func (v *Valuation) Day(i int) Date { return v.days[i] }

// Days iterates over the table's dates in chronological order.
func (v *Valuation) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for _, on := range v.days {
			if !yield(on) {
				return
			}
		}
	}
}

// ValuationRow is one dated row of a Valuation table.
type ValuationRow struct {
	On                Date
	MarkValue         float64
	MarkValueExIncome float64
	Cost              float64
	CashFlow          float64
	DailyChangeWithCF float64
	DailyChange       float64
	TotalChange       float64
	DailyReturn       float64
	TotalReturn       float64
}

func (v *Valuation) row(i int) ValuationRow {
	return ValuationRow{
		On:                v.days[i],
		MarkValue:         v.MarkValue[i],
		MarkValueExIncome: v.MarkValueExIncome[i],
		Cost:              v.Cost[i],
		CashFlow:          v.CashFlow[i],
		DailyChangeWithCF: v.DailyChangeWithCF[i],
		DailyChange:       v.DailyChange[i],
		TotalChange:       v.TotalChange[i],
		DailyReturn:       v.DailyReturn[i],
		TotalReturn:       v.TotalReturn[i],
	}
}

// Row returns the row for a given date.
func (v *Valuation) Row(on Date) (ValuationRow, bool) {
	i, found := slices.BinarySearchFunc(v.days, on, Date.Compare)
	if !found {
		return ValuationRow{}, false
	}
	return v.row(i), true
}

// Last returns the most recent row of the table.
func (v *Valuation) Last() (ValuationRow, bool) {
	if len(v.days) == 0 {
		return ValuationRow{}, false
	}
	return v.row(len(v.days) - 1), true
}

// Tail returns the last n rows (all rows when n exceeds the table length).
func (v *Valuation) Tail(n int) []ValuationRow {
	if n > len(v.days) {
		n = len(v.days)
	}
	rows := make([]ValuationRow, 0, n)
	for i := len(v.days) - n; i < len(v.days); i++ {
		rows = append(rows, v.row(i))
	}
	return rows
}

// derive recomputes the flow and return columns from MarkValue and Cost.
func (v *Valuation) derive() {
	for i := range v.days {
		cost, mv := v.Cost[i], v.MarkValue[i]
		if i == 0 {
			v.CashFlow[i] = cost
			v.DailyChangeWithCF[i] = math.NaN()
			v.DailyChange[i] = math.NaN()
			v.DailyReturn[i] = math.NaN()
		} else {
			prevCost, prevMV := v.Cost[i-1], v.MarkValue[i-1]
			cf := cost - prevCost
			v.CashFlow[i] = cf
			v.DailyChangeWithCF[i] = mv - prevMV
			v.DailyChange[i] = v.DailyChangeWithCF[i] - cf
			if den := cf + prevMV; den == 0 {
				v.DailyReturn[i] = math.NaN()
			} else {
				v.DailyReturn[i] = (mv - prevMV - cf) / den
			}
		}
		v.TotalChange[i] = mv - cost
		if cost == 0 {
			v.TotalReturn[i] = math.NaN()
		} else {
			v.TotalReturn[i] = v.TotalChange[i] / cost
		}
	}
}

// addFill adds two cells treating a missing operand as zero; the sum is
// missing only when both operands are.
func addFill(a, b float64) float64 {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.NaN()
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	default:
		return a + b
	}
}

// sumValuations sums the primary columns of several tables over the union of
// their dates, treating a table with no row for a date as contributing zero,
// then derives the flow and return columns of the combined table.
func sumValuations(tables ...*Valuation) *Valuation {
	set := make(map[Date]struct{})
	for _, t := range tables {
		for _, on := range t.days {
			set[on] = struct{}{}
		}
	}
	days := slices.SortedFunc(maps.Keys(set), Date.Compare)

	v := newValuation(len(days))
	copy(v.days, days)
	for i := range days {
		v.MarkValue[i] = math.NaN()
		v.MarkValueExIncome[i] = math.NaN()
		v.Cost[i] = math.NaN()
	}

	for _, t := range tables {
		for i, on := range t.days {
			j, _ := slices.BinarySearchFunc(days, on, Date.Compare)
			v.MarkValue[j] = addFill(v.MarkValue[j], t.MarkValue[i])
			v.MarkValueExIncome[j] = addFill(v.MarkValueExIncome[j], t.MarkValueExIncome[i])
			v.Cost[j] = addFill(v.Cost[j], t.Cost[i])
		}
	}

	v.derive()
	return v
}
