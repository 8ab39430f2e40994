package valuation

// FXPricer values FX forwards by covered interest parity:
// F = spot * DF_base(T) / DF_quote(T),
// NPV = notional_base * DF_quote(T) * (F - strike), in quote currency.
type FXPricer struct{}

func (FXPricer) CanPrice(instrument Instrument) bool {
	_, ok := instrument.(FXForward)
	return ok
}

func (FXPricer) NPV(instrument Instrument, market *Market) (float64, error) {
	fwd, ok := instrument.(FXForward)
	if !ok {
		return 0, &UnsupportedInstrumentError{Pricer: "FXPricer", Instrument: instrument.Kind()}
	}
	spot, err := market.FX(fwd.Pair)
	if err != nil {
		return 0, err
	}
	base, err := market.Curve(fwd.BaseCurve)
	if err != nil {
		return 0, err
	}
	quote, err := market.Curve(fwd.QuoteCurve)
	if err != nil {
		return 0, err
	}
	dfBase := base.DF(fwd.Maturity)
	dfQuote := quote.DF(fwd.Maturity)
	forward := spot * dfBase / dfQuote
	return fwd.NotionalBase * dfQuote * (forward - fwd.Strike), nil
}
