package valuation

// Pricer values one instrument type. CanPrice is the dispatch predicate used
// by Engine; NPV computes present value in the instrument's natural currency
// (quote currency for FX forwards, notional currency otherwise).
type Pricer interface {
	CanPrice(instrument Instrument) bool
	NPV(instrument Instrument, market *Market) (float64, error)
}
