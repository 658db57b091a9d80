package delfos

// PositionReport is the flattened, display-ready view of one position.
type PositionReport struct {
	Ticker  string
	Company string
	Active  bool

	Quantity     Quantity
	AverageCost  Money
	CurrentPrice Money

	HeldSharesCost   Money
	HeldSharesValue  Money
	HeldSharesChange Money
	HeldSharesReturn Percent

	TotalCost      Money
	TotalIncome    Money
	TotalProceeds  Money
	TotalDividends Money
	TotalChange    Money
	TotalReturn    Percent
}

// Report is a snapshot of the whole book, flattened for rendering. It copies
// every number out of the portfolio so renderers never hold live references.
type Report struct {
	On   Date
	Cash Money

	HeldSharesCost   Money
	HeldSharesValue  Money
	HeldSharesChange Money
	HeldSharesReturn Percent

	TotalCost      Money
	TotalIncome    Money
	TotalProceeds  Money
	TotalDividends Money
	TotalChange    Money
	TotalReturn    Percent

	Positions     []PositionReport
	FailedSymbols []string
}

// Report flattens the book into a display-ready snapshot.
func (p *Portfolio) Report() *Report {
	r := &Report{
		On:   p.On(),
		Cash: p.Cash(),

		HeldSharesCost:   p.HeldSharesCost(),
		HeldSharesValue:  p.HeldSharesValue(),
		HeldSharesChange: p.HeldSharesChange(),
		HeldSharesReturn: p.HeldSharesReturn(),

		TotalCost:      p.TotalCost(),
		TotalIncome:    p.TotalIncome(),
		TotalProceeds:  p.TotalProceeds(),
		TotalDividends: p.TotalDividends(),
		TotalChange:    p.TotalChange(),
		TotalReturn:    p.TotalReturn(),

		FailedSymbols: p.FailedSymbols(),
	}
	for pos := range p.Positions() {
		r.Positions = append(r.Positions, PositionReport{
			Ticker:  pos.Ticker(),
			Company: pos.Instrument().Company(),
			Active:  pos.IsActive(),

			Quantity:     pos.Quantity(),
			AverageCost:  pos.AverageCost(),
			CurrentPrice: pos.CurrentPrice(),

			HeldSharesCost:   pos.HeldSharesCost(),
			HeldSharesValue:  pos.HeldSharesValue(),
			HeldSharesChange: pos.HeldSharesChange(),
			HeldSharesReturn: pos.HeldSharesReturn(),

			TotalCost:      pos.TotalCost(),
			TotalIncome:    pos.TotalIncome(),
			TotalProceeds:  pos.TotalProceeds(),
			TotalDividends: pos.TotalDividends(),
			TotalChange:    pos.TotalChange(),
			TotalReturn:    pos.TotalReturn(),
		})
	}
	return r
}
