package valuation

// BondPricer values zero-coupon bonds: NPV = notional * DF(maturity).
type BondPricer struct{}

func (BondPricer) CanPrice(instrument Instrument) bool {
	_, ok := instrument.(ZeroCouponBond)
	return ok
}

func (BondPricer) NPV(instrument Instrument, market *Market) (float64, error) {
	bond, ok := instrument.(ZeroCouponBond)
	if !ok {
		return 0, &UnsupportedInstrumentError{Pricer: "BondPricer", Instrument: instrument.Kind()}
	}
	c, err := market.Curve(bond.CurveName)
	if err != nil {
		return 0, err
	}
	return bond.Notional * c.DF(bond.Maturity), nil
}
