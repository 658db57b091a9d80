package delfos

import (
	"testing"
	"time"
)

// day is a helper for tests to build dates from ledger-format consts.
func day(s string) Date { return MustParse(s) }

// tradingClock returns a clock pinned inside trading hours of the given day.
func tradingClock(on Date) Clock {
	return ClockFunc(func() time.Time {
		return time.Date(on.Year(), on.Month(), on.Day(), 14, 30, 0, 0, time.Local)
	})
}

// closedClock returns a clock pinned after the close of the given day.
func closedClock(on Date) Clock {
	return ClockFunc(func() time.Time {
		return time.Date(on.Year(), on.Month(), on.Day(), 20, 0, 0, 0, time.Local)
	})
}

// newTestInstrument builds an instrument with one price per given day.
func newTestInstrument(t *testing.T, ticker string, prices map[string]float64) *Instrument {
	t.Helper()
	inst := NewInstrument(ticker, ticker+" Company", "Energy", "ON")
	for d, p := range prices {
		inst.Prices().Append(day(d), p)
	}
	return inst
}

// newTestMarket builds a market holding one instrument per ticker, each with
// the given dated prices.
func newTestMarket(t *testing.T, instruments map[string]map[string]float64) *Market {
	t.Helper()
	market := NewMarket()
	for ticker, prices := range instruments {
		market.Add(newTestInstrument(t, ticker, prices))
	}
	return market
}

// newTestPortfolio builds a portfolio on a non-live session pinned to asOf.
func newTestPortfolio(t *testing.T, market *Market, asOf string, cash float64, movements ...Movement) *Portfolio {
	t.Helper()
	session := NewSessionAt(day(asOf), closedClock(day(asOf)))
	p, err := NewPortfolio(session, market, M(cash), movements)
	if err != nil {
		t.Fatalf("NewPortfolio() unexpected error: %v", err)
	}
	return p
}
