package delfos

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Split is a corporate split event: each share outstanding before the
// effective date becomes Numerator/Denominator shares after it.
type Split struct {
	Date        Date  `json:"date"`
	Numerator   int64 `json:"num"`
	Denominator int64 `json:"den"`
}

// Ratio returns the split factor as a decimal (2/1 split yields 2).
func (s Split) Ratio() decimal.Decimal {
	return decimal.NewFromInt(s.Numerator).Div(decimal.NewFromInt(s.Denominator))
}

// Instrument holds the market data of a single listed instrument: its
// identity, the time-indexed price/volume table, and its split history.
type Instrument struct {
	ticker  string
	company string
	sector  string
	segment string

	prices  History[float64]
	volumes History[float64]
	splits  []Split // chronological
}

// NewInstrument returns an instrument with empty price and split tables.
func NewInstrument(ticker, company, sector, segment string) *Instrument {
	return &Instrument{ticker: ticker, company: company, sector: sector, segment: segment}
}

func (s *Instrument) Ticker() string  { return s.ticker }
func (s *Instrument) Company() string { return s.company }
func (s *Instrument) Sector() string  { return s.sector }
func (s *Instrument) Segment() string { return s.segment }

// Prices returns the instrument's closing price series.
func (s *Instrument) Prices() *History[float64] { return &s.prices }

// Volumes returns the instrument's traded volume series.
func (s *Instrument) Volumes() *History[float64] { return &s.volumes }

// AddSplit records a split event, keeping the split history chronological.
// Re-adding an identical event is a no-op, so imports can merge safely.
func (s *Instrument) AddSplit(split Split) {
	for _, known := range s.splits {
		if known == split {
			return
		}
	}
	s.splits = append(s.splits, split)
	for i := len(s.splits) - 1; i > 0 && s.splits[i].Date.Before(s.splits[i-1].Date); i-- {
		s.splits[i], s.splits[i-1] = s.splits[i-1], s.splits[i]
	}
}

// Splits returns the instrument's split history in chronological order.
func (s *Instrument) Splits() []Split {
	out := make([]Split, len(s.splits))
	copy(out, s.splits)
	return out
}

// SplitsBetween returns, in chronological order, the splits effective
// strictly after 'after' and on or before 'until'.
func (s *Instrument) SplitsBetween(after, until Date) []Split {
	var out []Split
	for _, split := range s.splits {
		if split.Date.After(after) && !split.Date.After(until) {
			out = append(out, split)
		}
	}
	return out
}

// PriceAsOf returns the closing price on a given day, or the most recent
// price before it.
func (s *Instrument) PriceAsOf(on Date) (float64, bool) {
	return s.prices.ValueAsOf(on)
}

// CurrentPrice returns the last known price on or before the analysis date.
func (s *Instrument) CurrentPrice(asOf Date) (float64, bool) {
	return s.PriceAsOf(asOf)
}

// Resolver supplies instrument data to the accounting engine. It is the
// narrow interface the engine requires from a market-data collaborator: the
// collaborator may be arbitrarily sophisticated internally, but resolution
// must look synchronous from here.
type Resolver interface {
	// Resolve returns the instrument known under ticker as of the given
	// date, or false when the symbol cannot be resolved.
	Resolve(ticker string, asOf Date) (*Instrument, bool)
}

// Market is an in-memory Resolver over a fixed set of instruments.
type Market struct {
	instruments []*Instrument
	index       map[string]*Instrument
}

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{
		instruments: make([]*Instrument, 0),
		index:       make(map[string]*Instrument),
	}
}

// Add registers an instrument, replacing any previous one with the same ticker.
func (m *Market) Add(inst *Instrument) {
	if old, ok := m.index[inst.ticker]; ok {
		for i, s := range m.instruments {
			if s == old {
				m.instruments[i] = inst
				break
			}
		}
	} else {
		m.instruments = append(m.instruments, inst)
	}
	m.index[inst.ticker] = inst
}

func (m *Market) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

func (m *Market) Get(ticker string) *Instrument { return m.index[ticker] }

// Resolve implements Resolver. A ticker resolves when the instrument is known
// and carries at least one price on or before the as-of date; an instrument
// with no quotable history yet is indistinguishable from an unlisted one for
// valuation purposes.
func (m *Market) Resolve(ticker string, asOf Date) (*Instrument, bool) {
	inst, ok := m.index[ticker]
	if !ok {
		return nil, false
	}
	if _, ok := inst.PriceAsOf(asOf); !ok {
		return nil, false
	}
	return inst, true
}

// Instruments iterates over the market's instruments in insertion order.
func (m *Market) Instruments() iter.Seq[*Instrument] {
	return func(yield func(*Instrument) bool) {
		for _, s := range m.instruments {
			if !yield(s) {
				return
			}
		}
	}
}

var _ Resolver = (*Market)(nil)
