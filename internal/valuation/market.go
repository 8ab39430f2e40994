package valuation

import "sort"

// Market is an immutable snapshot of pricing inputs: curves keyed by name
// (e.g. "USD_DISC") and FX spot rates keyed by pair (e.g. "EURUSD").
// WithCurve / WithFX return derived snapshots, so a bumped market can never
// alias the base market used for the unbumped NPV in the same calculation.
type Market struct {
	curves map[string]Curve
	fxSpot map[string]float64
}

// NewMarket copies the given maps into a fresh snapshot. Either map may be nil.
func NewMarket(curves map[string]Curve, fxSpot map[string]float64) *Market {
	m := &Market{
		curves: make(map[string]Curve, len(curves)),
		fxSpot: make(map[string]float64, len(fxSpot)),
	}
	for name, c := range curves {
		m.curves[name] = c
	}
	for pair, spot := range fxSpot {
		m.fxSpot[pair] = spot
	}
	return m
}

// Curve returns the curve registered under name.
func (m *Market) Curve(name string) (Curve, error) {
	c, ok := m.curves[name]
	if !ok {
		return nil, &MarketDataError{Kind: "curve", Name: name}
	}
	return c, nil
}

// FX returns the spot rate for pair.
func (m *Market) FX(pair string) (float64, error) {
	spot, ok := m.fxSpot[pair]
	if !ok {
		return 0, &MarketDataError{Kind: "fx pair", Name: pair}
	}
	return spot, nil
}

// WithCurve returns a new Market with one curve replaced or added.
func (m *Market) WithCurve(name string, c Curve) *Market {
	curves := make(map[string]Curve, len(m.curves)+1)
	for k, v := range m.curves {
		curves[k] = v
	}
	curves[name] = c
	return &Market{curves: curves, fxSpot: m.fxSpot}
}

// WithFX returns a new Market with one FX spot replaced or added.
func (m *Market) WithFX(pair string, spot float64) *Market {
	fx := make(map[string]float64, len(m.fxSpot)+1)
	for k, v := range m.fxSpot {
		fx[k] = v
	}
	fx[pair] = spot
	return &Market{curves: m.curves, fxSpot: fx}
}

// CurveNames returns the registered curve names, sorted.
func (m *Market) CurveNames() []string {
	names := make([]string, 0, len(m.curves))
	for name := range m.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FXPairs returns the registered FX pairs, sorted.
func (m *Market) FXPairs() []string {
	pairs := make([]string, 0, len(m.fxSpot))
	for pair := range m.fxSpot {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	return pairs
}
