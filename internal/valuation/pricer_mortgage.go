package valuation

import "math"

// MortgagePricer values level-pay fixed-rate mortgages (no prepayment,
// no default): the annuity formula gives the constant payment, NPV is the
// sum of payments discounted at t_i = i/paymentsPerYear.
type MortgagePricer struct{}

func (MortgagePricer) CanPrice(instrument Instrument) bool {
	_, ok := instrument.(LevelPayMortgage)
	return ok
}

func (MortgagePricer) NPV(instrument Instrument, market *Market) (float64, error) {
	mort, ok := instrument.(LevelPayMortgage)
	if !ok {
		return 0, &UnsupportedInstrumentError{Pricer: "MortgagePricer", Instrument: instrument.Kind()}
	}
	c, err := market.Curve(mort.CurveName)
	if err != nil {
		return 0, err
	}
	n := int(math.Round(mort.TermYears * float64(mort.PaymentsPerYear)))
	r := mort.AnnualRate / float64(mort.PaymentsPerYear)
	var payment float64
	if r == 0 {
		payment = mort.Notional / float64(n)
	} else {
		growth := math.Pow(1+r, float64(n))
		payment = mort.Notional * r * growth / (growth - 1)
	}
	pv := 0.0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(mort.PaymentsPerYear)
		pv += payment * c.DF(t)
	}
	return pv, nil
}
