package valuation

// SwapPricer values single-curve fixed-float swaps.
// Convention: receive float, pay fixed. NPV = PV(float leg) - PV(fixed leg).
//
// Both legs are computed as explicit per-period sums. The float leg
// telescopes to notional*(DF(t0)-DF(T)) under a single curve, but the
// per-period form is the one that stays correct if projection and
// discounting curves ever diverge, so it is not collapsed here.
type SwapPricer struct{}

func (SwapPricer) CanPrice(instrument Instrument) bool {
	_, ok := instrument.(FixedFloatSwap)
	return ok
}

func (SwapPricer) NPV(instrument Instrument, market *Market) (float64, error) {
	swap, ok := instrument.(FixedFloatSwap)
	if !ok {
		return 0, &UnsupportedInstrumentError{Pricer: "SwapPricer", Instrument: instrument.Kind()}
	}
	c, err := market.Curve(swap.CurveName)
	if err != nil {
		return 0, err
	}
	return pvFloatLeg(swap, c) - pvFixedLeg(swap, c), nil
}

// pvFixedLeg: sum_i notional * fixedRate * accrual_i * DF(t_i), accruals
// inferred from successive pay times.
func pvFixedLeg(swap FixedFloatSwap, c Curve) float64 {
	pv := 0.0
	prev := swap.T0
	for _, t := range swap.PayTimes {
		accrual := t - prev
		pv += swap.Notional * swap.FixedRate * accrual * c.DF(t)
		prev = t
	}
	return pv
}

// pvFloatLeg: forward per period f_i = (DF(t_{i-1})/DF(t_i) - 1) / accrual_i,
// zero when the accrual is zero.
func pvFloatLeg(swap FixedFloatSwap, c Curve) float64 {
	pv := 0.0
	prev := swap.T0
	dfPrev := c.DF(prev)
	for _, t := range swap.PayTimes {
		accrual := t - prev
		dfT := c.DF(t)
		fwd := 0.0
		if accrual > 0 {
			fwd = (dfPrev/dfT - 1.0) / accrual
		}
		pv += swap.Notional * fwd * accrual * dfT
		prev = t
		dfPrev = dfT
	}
	return pv
}
