package valuation

// Engine is a registry-based pricing engine: pricers are tried in
// registration order and the first whose CanPrice matches wins. New
// instrument types plug in by registering another pricer; nothing in the
// engine or the existing pricers changes.
type Engine struct {
	pricers []Pricer
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// NewDefaultEngine returns an engine with the five built-in pricers
// registered.
func NewDefaultEngine() *Engine {
	e := NewEngine()
	e.Register(BondPricer{})
	e.Register(SwapPricer{})
	e.Register(FXPricer{})
	e.Register(MortgagePricer{})
	e.Register(CDSPricer{})
	return e
}

// Register appends a pricer. Order matters: first match wins.
func (e *Engine) Register(p Pricer) {
	e.pricers = append(e.pricers, p)
}

// Price dispatches to the first matching pricer.
func (e *Engine) Price(instrument Instrument, market *Market) (float64, error) {
	for _, p := range e.pricers {
		if p.CanPrice(instrument) {
			return p.NPV(instrument, market)
		}
	}
	return 0, &NoPricerFoundError{Instrument: instrument.Kind()}
}

var defaultEngine = NewDefaultEngine()

// Price values an instrument with the package default engine. Most callers
// need nothing else; advanced users build their own Engine.
func Price(instrument Instrument, market *Market) (float64, error) {
	return defaultEngine.Price(instrument, market)
}
