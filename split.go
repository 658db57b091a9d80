package delfos

// adjustForSplits returns a copy of the movement with quantity and price
// rewritten for every split of the instrument effective strictly after the
// movement date and on or before the analysis date, applied in chronological
// order.
//
// Share counts stay whole: the multiplied quantity is floored, matching how
// the broker credits post-split positions. The per-unit price is divided by
// the same ratio so the movement's cost is conserved.
func adjustForSplits(m Movement, inst *Instrument, asOf Date) Movement {
	for _, split := range inst.SplitsBetween(m.Date, asOf) {
		num, den := Q(split.Numerator), Q(split.Denominator)
		m.Quantity = m.Quantity.Mul(num).Div(den).Floor()
		m.Price = m.Price.Mul(den).Div(num)
	}
	return m
}
