package delfos

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeMovements(t *testing.T) {
	ledger := `
{"security":"PETR4","kind":"buy","quantity":100,"price":30.5,"amount":3050,"date":"02-01-2026"}

{"security":"PETR4","kind":"dividend","amount":75,"date":"05-01-2026"}
{"security":"PETR4","kind":"sell","quantity":40,"price":32,"amount":1280,"date":"06-01-2026"}
`
	movements, err := DecodeMovements(strings.NewReader(ledger))
	if err != nil {
		t.Fatalf("DecodeMovements() unexpected error: %v", err)
	}
	if len(movements) != 3 {
		t.Fatalf("decoded %d movements, want 3", len(movements))
	}
	if want := NewBuy(day("02-01-2026"), "PETR4", Q(100), M(30.5)); !movements[0].Equal(want) {
		t.Errorf("movements[0] = %s, want %s", movements[0], want)
	}
	if movements[1].Kind != Dividend || !movements[1].Amount.Equal(M(75.0)) {
		t.Errorf("movements[1] = %s, want a 75 dividend", movements[1])
	}
}

func TestDecodeMovementsRejectsMalformedLine(t *testing.T) {
	tests := []struct {
		name   string
		ledger string
	}{
		{"broken json", `{"security":"PETR4","kind":"buy`},
		{"unknown kind", `{"security":"PETR4","kind":"borrow","date":"02-01-2026"}`},
		{"bad date", `{"security":"PETR4","kind":"buy","quantity":1,"price":1,"date":"2026-13-45"}`},
		{"missing ticker", `{"kind":"buy","quantity":1,"price":1,"date":"02-01-2026"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeMovements(strings.NewReader(tc.ledger)); err == nil {
				t.Errorf("DecodeMovements() accepted %q", tc.ledger)
			}
		})
	}
}

func TestEncodeMovementsRoundtrip(t *testing.T) {
	movements := []Movement{
		NewBuy(day("02-01-2026"), "PETR4", Q(100), M(30.5)),
		NewDividend(day("05-01-2026"), "PETR4", M(75.0)),
	}
	var buf bytes.Buffer
	if err := EncodeMovements(&buf, movements); err != nil {
		t.Fatalf("EncodeMovements() unexpected error: %v", err)
	}
	got, err := DecodeMovements(&buf)
	if err != nil {
		t.Fatalf("DecodeMovements() unexpected error: %v", err)
	}
	if len(got) != len(movements) {
		t.Fatalf("roundtrip decoded %d movements, want %d", len(got), len(movements))
	}
	for i := range got {
		if !got[i].Equal(movements[i]) {
			t.Errorf("roundtrip movement %d = %s, want %s", i, got[i], movements[i])
		}
	}
}

func TestMarketRoundtrip(t *testing.T) {
	market := newTestMarket(t, map[string]map[string]float64{
		"PETR4": {"02-01-2026": 30, "05-01-2026": 31},
	})
	market.Get("PETR4").AddSplit(Split{Date: day("10-01-2026"), Numerator: 2, Denominator: 1})

	var buf bytes.Buffer
	if err := EncodeMarket(&buf, market); err != nil {
		t.Fatalf("EncodeMarket() unexpected error: %v", err)
	}
	got, err := DecodeMarket(&buf)
	if err != nil {
		t.Fatalf("DecodeMarket() unexpected error: %v", err)
	}
	inst := got.Get("PETR4")
	if inst == nil {
		t.Fatal("decoded market is missing PETR4")
	}
	if price, ok := inst.PriceAsOf(day("05-01-2026")); !ok || price != 31 {
		t.Errorf("decoded price = (%v, %v), want (31, true)", price, ok)
	}
	if splits := inst.Splits(); len(splits) != 1 || splits[0].Numerator != 2 {
		t.Errorf("decoded splits = %v, want one 2:1 split", splits)
	}
}

func TestDecodeMarketRejectsDuplicateTicker(t *testing.T) {
	data := `{"ticker":"PETR4"}
{"ticker":"PETR4"}`
	if _, err := DecodeMarket(strings.NewReader(data)); err == nil {
		t.Errorf("DecodeMarket() accepted a duplicate ticker")
	}
}
