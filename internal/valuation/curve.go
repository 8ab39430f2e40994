package valuation

import "math"

// Curve is the discounting/survival contract shared by all curve types.
// Times are year fractions from the curve reference. For a discount curve
// DF(t) is a discount factor; for a hazard curve it is the survival
// probability S(t). Bumped returns a shifted copy, the receiver is never
// modified.
type Curve interface {
	Name() string
	DF(t float64) float64
	Bumped(delta float64) Curve
}

// ZeroRateCurve holds continuously compounded zero rates at increasing
// pillar times. Rates are linearly interpolated between pillars and held
// flat beyond the first/last pillar, so DF(t) = exp(-r(t)*t) is defined
// for every t >= 0.
type ZeroRateCurve struct {
	name    string
	pillars []float64
	rates   []float64
}

// NewZeroRateCurve validates and builds a zero rate curve. Pillars must be
// strictly increasing and match ratesCC in length.
func NewZeroRateCurve(name string, pillars, ratesCC []float64) (*ZeroRateCurve, error) {
	if err := validatePillars(pillars, ratesCC, "zero_rates_cc"); err != nil {
		return nil, err
	}
	return &ZeroRateCurve{
		name:    name,
		pillars: append([]float64(nil), pillars...),
		rates:   append([]float64(nil), ratesCC...),
	}, nil
}

func (c *ZeroRateCurve) Name() string { return c.name }

// ZeroRate returns the CC zero rate at time t, linearly interpolated in
// rates (not in discount factors), flat outside the pillar range.
func (c *ZeroRateCurve) ZeroRate(t float64) float64 {
	return interpLinear(c.pillars, c.rates, t)
}

// DF returns exp(-r(t)*t). Negative t is treated as 0 (DF=1).
func (c *ZeroRateCurve) DF(t float64) float64 {
	if t <= 0 {
		return 1.0
	}
	return math.Exp(-c.ZeroRate(t) * t)
}

// Bumped returns a new curve with every zero rate shifted by delta
// (absolute terms: 1bp = 0.0001).
func (c *ZeroRateCurve) Bumped(delta float64) Curve {
	rates := make([]float64, len(c.rates))
	for i, r := range c.rates {
		rates[i] = r + delta
	}
	return &ZeroRateCurve{name: c.name, pillars: append([]float64(nil), c.pillars...), rates: rates}
}

// Pillars returns a copy of the pillar times.
func (c *ZeroRateCurve) Pillars() []float64 { return append([]float64(nil), c.pillars...) }

// Rates returns a copy of the CC zero rates.
func (c *ZeroRateCurve) Rates() []float64 { return append([]float64(nil), c.rates...) }

// HazardRateCurve holds a piecewise-constant hazard rate: hazard[i] applies
// on (pillar[i-1], pillar[i]], flat before the first and after the last
// pillar. DF(t) returns the survival probability S(t) = exp(-∫₀ᵗ h(u)du).
type HazardRateCurve struct {
	name    string
	pillars []float64
	hazards []float64
}

// NewHazardRateCurve validates and builds a hazard rate curve.
func NewHazardRateCurve(name string, pillars, hazardRates []float64) (*HazardRateCurve, error) {
	if err := validatePillars(pillars, hazardRates, "hazard_rates"); err != nil {
		return nil, err
	}
	return &HazardRateCurve{
		name:    name,
		pillars: append([]float64(nil), pillars...),
		hazards: append([]float64(nil), hazardRates...),
	}, nil
}

func (c *HazardRateCurve) Name() string { return c.name }

// HazardRate returns the piecewise-constant hazard at time t.
func (c *HazardRateCurve) HazardRate(t float64) float64 {
	if t <= c.pillars[0] {
		return c.hazards[0]
	}
	for i := 1; i < len(c.pillars); i++ {
		if t <= c.pillars[i] {
			return c.hazards[i]
		}
	}
	return c.hazards[len(c.hazards)-1]
}

// DF returns the survival probability S(t), accumulating hazard*duration
// segment by segment up to t.
func (c *HazardRateCurve) DF(t float64) float64 {
	if t <= 0 {
		return 1.0
	}
	integral := 0.0
	prev := 0.0
	for i := range c.pillars {
		end := math.Min(c.pillars[i], t)
		if end > prev {
			integral += c.hazards[i] * (end - prev)
		}
		prev = c.pillars[i]
		if prev >= t {
			break
		}
	}
	if last := c.pillars[len(c.pillars)-1]; t > last {
		integral += c.hazards[len(c.hazards)-1] * (t - last)
	}
	return math.Exp(-integral)
}

// Bumped returns a new curve with every hazard rate shifted by delta.
func (c *HazardRateCurve) Bumped(delta float64) Curve {
	hazards := make([]float64, len(c.hazards))
	for i, h := range c.hazards {
		hazards[i] = h + delta
	}
	return &HazardRateCurve{name: c.name, pillars: append([]float64(nil), c.pillars...), hazards: hazards}
}

// Pillars returns a copy of the pillar times.
func (c *HazardRateCurve) Pillars() []float64 { return append([]float64(nil), c.pillars...) }

// Hazards returns a copy of the hazard rates.
func (c *HazardRateCurve) Hazards() []float64 { return append([]float64(nil), c.hazards...) }

func validatePillars(pillars, values []float64, valuesName string) error {
	if len(pillars) == 0 {
		return &ConfigurationError{Reason: "curve must have at least one pillar"}
	}
	if len(pillars) != len(values) {
		return &ConfigurationError{Reason: "pillars and " + valuesName + " must have the same length"}
	}
	for i := 1; i < len(pillars); i++ {
		if pillars[i] <= pillars[i-1] {
			return &ConfigurationError{Reason: "pillars must be strictly increasing"}
		}
	}
	return nil
}

// interpLinear interpolates values over pillars at t with flat extrapolation.
// Exact at pillar points.
func interpLinear(pillars, values []float64, t float64) float64 {
	if t <= pillars[0] {
		return values[0]
	}
	n := len(pillars)
	if t >= pillars[n-1] {
		return values[n-1]
	}
	for i := 0; i < n-1; i++ {
		if t <= pillars[i+1] {
			t0, t1 := pillars[i], pillars[i+1]
			v0, v1 := values[i], values[i+1]
			return v0 + (v1-v0)*(t-t0)/(t1-t0)
		}
	}
	return values[n-1]
}
