package valuation

import "fmt"

// ConfigurationError reports malformed curve or instrument construction
// (mismatched array lengths, non-increasing pillars, non-positive maturity...).
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// MarketDataError reports a failed market lookup. Kind is "curve" or "fx pair".
type MarketDataError struct {
	Kind string
	Name string
}

func (e *MarketDataError) Error() string {
	return fmt.Sprintf("market data error: %s %q not found", e.Kind, e.Name)
}

// NoPricerFoundError reports an engine dispatch miss.
type NoPricerFoundError struct {
	Instrument string
}

func (e *NoPricerFoundError) Error() string {
	return fmt.Sprintf("no pricer registered for %s; register one with engine.Register", e.Instrument)
}

// UnsupportedInstrumentError reports a pricer invoked with an instrument it
// cannot handle. Defensive only: cannot happen when dispatch goes through Engine.
type UnsupportedInstrumentError struct {
	Pricer     string
	Instrument string
}

func (e *UnsupportedInstrumentError) Error() string {
	return fmt.Sprintf("%s cannot price %s", e.Pricer, e.Instrument)
}
