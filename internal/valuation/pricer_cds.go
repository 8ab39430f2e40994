package valuation

// CDSPricer values single-name CDS with a discrete default approximation:
// premium leg on the surviving notional, protection leg paying LGD at the
// period midpoint. NPV = protection - premium for a protection buyer,
// negated for a seller.
type CDSPricer struct{}

func (CDSPricer) CanPrice(instrument Instrument) bool {
	_, ok := instrument.(CDS)
	return ok
}

func (CDSPricer) NPV(instrument Instrument, market *Market) (float64, error) {
	cds, ok := instrument.(CDS)
	if !ok {
		return 0, &UnsupportedInstrumentError{Pricer: "CDSPricer", Instrument: instrument.Kind()}
	}
	disc, surv, err := cdsCurves(cds, market)
	if err != nil {
		return 0, err
	}
	npv := pvProtectionLeg(cds, disc, surv) - pvPremiumLeg(cds, disc, surv)
	if !cds.ProtectionBuyer {
		npv = -npv
	}
	return npv, nil
}

// FairSpread solves the spread s* with NPV=0 in closed form:
// s* = protection leg / risky annuity, where the risky annuity is
// sum_i accrual_i * DF(t_i) * S(t_i) on unit spread.
func FairSpread(cds CDS, market *Market) (float64, error) {
	disc, surv, err := cdsCurves(cds, market)
	if err != nil {
		return 0, err
	}
	protection := pvProtectionLeg(cds, disc, surv)
	annuity := 0.0
	prev := cds.T0
	for _, t := range cds.PayTimes {
		annuity += cds.Notional * (t - prev) * disc.DF(t) * surv.DF(t)
		prev = t
	}
	if annuity <= 0 {
		return 0, nil
	}
	return protection / annuity, nil
}

func cdsCurves(cds CDS, market *Market) (disc, surv Curve, err error) {
	disc, err = market.Curve(cds.DiscountCurve)
	if err != nil {
		return nil, nil, err
	}
	surv, err = market.Curve(cds.SurvivalCurve)
	if err != nil {
		return nil, nil, err
	}
	return disc, surv, nil
}

// pvPremiumLeg: sum_i notional * spread * accrual_i * DF(t_i) * S(t_i).
func pvPremiumLeg(cds CDS, disc, surv Curve) float64 {
	pv := 0.0
	prev := cds.T0
	for _, t := range cds.PayTimes {
		pv += cds.Notional * cds.PremiumRate * (t - prev) * disc.DF(t) * surv.DF(t)
		prev = t
	}
	return pv
}

// pvProtectionLeg: sum_i notional * (1-R) * DF(t_mid) * (S(t_{i-1}) - S(t_i)),
// default assumed at the period midpoint.
func pvProtectionLeg(cds CDS, disc, surv Curve) float64 {
	pv := 0.0
	prev := cds.T0
	sPrev := surv.DF(prev)
	for _, t := range cds.PayTimes {
		sT := surv.DF(t)
		mid := (prev + t) / 2.0
		pv += cds.Notional * (1.0 - cds.Recovery) * disc.DF(mid) * (sPrev - sT)
		prev = t
		sPrev = sT
	}
	return pv
}
