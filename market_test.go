package delfos

import "testing"

func TestMarketResolve(t *testing.T) {
	market := newTestMarket(t, map[string]map[string]float64{
		"PETR4": {"05-01-2026": 31},
	})

	if _, ok := market.Resolve("GHOST", day("31-01-2026")); ok {
		t.Errorf("Resolve() found an unknown ticker")
	}
	// Known but with no price on or before the as-of date: unresolvable for
	// valuation purposes.
	if _, ok := market.Resolve("PETR4", day("02-01-2026")); ok {
		t.Errorf("Resolve() found a ticker with no quotable history yet")
	}
	inst, ok := market.Resolve("PETR4", day("06-01-2026"))
	if !ok || inst.Ticker() != "PETR4" {
		t.Errorf("Resolve() = (%v, %v), want PETR4", inst, ok)
	}
}

func TestMarketAddReplaces(t *testing.T) {
	market := NewMarket()
	market.Add(NewInstrument("PETR4", "old", "", ""))
	market.Add(NewInstrument("PETR4", "new", "", ""))

	var count int
	for range market.Instruments() {
		count++
	}
	if count != 1 {
		t.Fatalf("market holds %d instruments, want 1", count)
	}
	if got := market.Get("PETR4").Company(); got != "new" {
		t.Errorf("Company() = %q, want the replacement", got)
	}
}

func TestInstrumentAddSplitDeduplicates(t *testing.T) {
	inst := NewInstrument("PETR4", "", "", "")
	split := Split{Date: day("10-01-2026"), Numerator: 2, Denominator: 1}
	inst.AddSplit(split)
	inst.AddSplit(split)
	if got := len(inst.Splits()); got != 1 {
		t.Errorf("Splits() has %d events, want 1 after a duplicate add", got)
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	var h History[float64]
	h.Append(day("05-01-2026"), 31)
	h.Append(day("02-01-2026"), 30)

	tests := []struct {
		on    string
		want  float64
		found bool
	}{
		{"01-01-2026", 0, false},
		{"02-01-2026", 30, true},
		{"03-01-2026", 30, true},
		{"06-01-2026", 31, true},
	}
	for _, tc := range tests {
		got, found := h.ValueAsOf(day(tc.on))
		if found != tc.found || got != tc.want {
			t.Errorf("ValueAsOf(%s) = (%v, %v), want (%v, %v)", tc.on, got, found, tc.want, tc.found)
		}
	}
}

func TestHistoryAppendOverwrites(t *testing.T) {
	var h History[float64]
	h.Append(day("02-01-2026"), 30)
	h.Append(day("02-01-2026"), 31)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if got, _ := h.Get(day("02-01-2026")); got != 31 {
		t.Errorf("Get() = %v, want the later value 31", got)
	}
}
