package delfos

import (
	"math"
	"testing"
)

func TestAddFill(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		a, b, want float64
	}{
		{1, 2, 3},
		{nan, 2, 2},
		{1, nan, 1},
		{nan, nan, nan},
	}
	for _, tc := range tests {
		got := addFill(tc.a, tc.b)
		if math.IsNaN(tc.want) != math.IsNaN(got) || (!math.IsNaN(got) && got != tc.want) {
			t.Errorf("addFill(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSumValuationsUnionsDates(t *testing.T) {
	a := newValuation(2)
	a.days[0], a.days[1] = day("02-01-2026"), day("05-01-2026")
	a.MarkValue[0], a.MarkValue[1] = 1000, 1100
	a.MarkValueExIncome[0], a.MarkValueExIncome[1] = 1000, 1100
	a.Cost[0], a.Cost[1] = 1000, 1000

	b := newValuation(2)
	b.days[0], b.days[1] = day("05-01-2026"), day("06-01-2026")
	b.MarkValue[0], b.MarkValue[1] = 500, 550
	b.MarkValueExIncome[0], b.MarkValueExIncome[1] = 500, 550
	b.Cost[0], b.Cost[1] = 500, 500

	v := sumValuations(a, b)
	if v.Len() != 3 {
		t.Fatalf("combined table has %d rows, want 3", v.Len())
	}

	// 02-01: only a contributes. 05-01: both. 06-01: only b.
	wants := []struct {
		on   string
		mv   float64
		cost float64
	}{
		{"02-01-2026", 1000, 1000},
		{"05-01-2026", 1600, 1500},
		{"06-01-2026", 550, 500},
	}
	for _, w := range wants {
		row, ok := v.Row(day(w.on))
		if !ok {
			t.Fatalf("no combined row for %s", w.on)
		}
		if row.MarkValue != w.mv || row.Cost != w.cost {
			t.Errorf("row %s = (MV %v, Cost %v), want (MV %v, Cost %v)", w.on, row.MarkValue, row.Cost, w.mv, w.cost)
		}
	}
}

func TestDeriveMissingCells(t *testing.T) {
	v := newValuation(2)
	v.days[0], v.days[1] = day("02-01-2026"), day("05-01-2026")
	v.MarkValue[0], v.MarkValue[1] = 0, 0
	v.Cost[0], v.Cost[1] = 0, 0
	v.derive()

	// Zero cost leaves the return undefined, not an error.
	if !math.IsNaN(v.TotalReturn[0]) || !math.IsNaN(v.TotalReturn[1]) {
		t.Errorf("TotalReturn = %v, want NaN with zero cost", v.TotalReturn)
	}
	// Zero denominator on the second row's daily return too.
	if !math.IsNaN(v.DailyReturn[1]) {
		t.Errorf("DailyReturn[1] = %v, want NaN with zero denominator", v.DailyReturn[1])
	}
}

func TestValuationTail(t *testing.T) {
	v := newValuation(3)
	v.days[0], v.days[1], v.days[2] = day("02-01-2026"), day("05-01-2026"), day("06-01-2026")
	if got := v.Tail(2); len(got) != 2 || got[0].On != day("05-01-2026") {
		t.Errorf("Tail(2) = %v, want the last two rows", got)
	}
	if got := v.Tail(10); len(got) != 3 {
		t.Errorf("Tail(10) = %d rows, want all 3", len(got))
	}
}
