package delfos

import "testing"

func TestAdjustForSplits(t *testing.T) {
	inst := newTestInstrument(t, "MGLU3", map[string]float64{"02-01-2026": 10})
	inst.AddSplit(Split{Date: day("10-01-2026"), Numerator: 2, Denominator: 1})

	m := NewBuy(day("02-01-2026"), "MGLU3", Q(100), M(10.0))
	adjusted := adjustForSplits(m, inst, day("31-01-2026"))

	if want := Q(200); !adjusted.Quantity.Equal(want) {
		t.Errorf("adjusted quantity = %s, want %s", adjusted.Quantity, want)
	}
	if want := M(5.0); !adjusted.Price.Equal(want) {
		t.Errorf("adjusted price = %s, want %s", adjusted.Price, want)
	}
	// Cost is conserved across the adjustment.
	if before, after := m.Price.Mul(m.Quantity), adjusted.Price.Mul(adjusted.Quantity); !before.Equal(after) {
		t.Errorf("cost changed across split: %s -> %s", before, after)
	}
}

func TestAdjustForSplitsFloorsOddLots(t *testing.T) {
	inst := newTestInstrument(t, "MGLU3", map[string]float64{"02-01-2026": 10})
	inst.AddSplit(Split{Date: day("10-01-2026"), Numerator: 3, Denominator: 2})

	m := NewBuy(day("02-01-2026"), "MGLU3", Q(101), M(10.0))
	adjusted := adjustForSplits(m, inst, day("31-01-2026"))

	// 101 * 3/2 = 151.5, the broker credits whole shares only.
	if want := Q(151); !adjusted.Quantity.Equal(want) {
		t.Errorf("adjusted quantity = %s, want %s", adjusted.Quantity, want)
	}
}

func TestAdjustForSplitsWindow(t *testing.T) {
	inst := newTestInstrument(t, "MGLU3", map[string]float64{"02-01-2026": 10})
	inst.AddSplit(Split{Date: day("01-01-2026"), Numerator: 2, Denominator: 1})  // before the movement
	inst.AddSplit(Split{Date: day("15-02-2026"), Numerator: 2, Denominator: 1}) // after the analysis date

	m := NewBuy(day("02-01-2026"), "MGLU3", Q(100), M(10.0))
	adjusted := adjustForSplits(m, inst, day("31-01-2026"))

	if !adjusted.Quantity.Equal(m.Quantity) || !adjusted.Price.Equal(m.Price) {
		t.Errorf("splits outside (movement, analysis] window were applied: %s", adjusted)
	}
}

func TestAdjustForSplitsChains(t *testing.T) {
	inst := newTestInstrument(t, "MGLU3", map[string]float64{"02-01-2026": 10})
	inst.AddSplit(Split{Date: day("10-01-2026"), Numerator: 2, Denominator: 1})
	inst.AddSplit(Split{Date: day("20-01-2026"), Numerator: 5, Denominator: 1})

	m := NewBuy(day("02-01-2026"), "MGLU3", Q(10), M(100.0))
	adjusted := adjustForSplits(m, inst, day("31-01-2026"))

	if want := Q(100); !adjusted.Quantity.Equal(want) {
		t.Errorf("adjusted quantity = %s, want %s", adjusted.Quantity, want)
	}
	if want := M(10.0); !adjusted.Price.Equal(want) {
		t.Errorf("adjusted price = %s, want %s", adjusted.Price, want)
	}
}
