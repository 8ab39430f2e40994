package service

// CurveInput describes a zero curve to load: pillar times in years and
// continuously compounded zero rates.
type CurveInput struct {
	Name        string    `json:"name"`
	Pillars     []float64 `json:"pillars"`
	ZeroRatesCC []float64 `json:"zero_rates_cc"`
}

// HazardCurveInput describes a piecewise-constant hazard curve.
type HazardCurveInput struct {
	Name    string    `json:"name"`
	Pillars []float64 `json:"pillars"`
	Hazards []float64 `json:"hazards"`
}

// MarketInput is a full market to load into the service.
type MarketInput struct {
	Curves       []CurveInput       `json:"curves"`
	HazardCurves []HazardCurveInput `json:"hazard_curves"`
	FXSpot       map[string]float64 `json:"fx_spot"`
}

type BondInput struct {
	Curve    string  `json:"curve"`
	Maturity float64 `json:"maturity"`
	Notional float64 `json:"notional"`
}

type SwapInput struct {
	Curve     string    `json:"curve"`
	Notional  float64   `json:"notional"`
	FixedRate float64   `json:"fixed_rate"`
	PayTimes  []float64 `json:"pay_times"`
}

type FXForwardInput struct {
	Pair         string  `json:"pair"`
	BaseCurve    string  `json:"base_curve"`
	QuoteCurve   string  `json:"quote_curve"`
	Maturity     float64 `json:"maturity"`
	NotionalBase float64 `json:"notional_base"`
	Strike       float64 `json:"strike"`
}

type MortgageInput struct {
	Curve           string  `json:"curve"`
	Notional        float64 `json:"notional"`
	AnnualRate      float64 `json:"annual_rate"`
	TermYears       float64 `json:"term_years"`
	PaymentsPerYear int     `json:"payments_per_year"`
}

type CDSInput struct {
	DiscountCurve   string    `json:"discount_curve"`
	SurvivalCurve   string    `json:"survival_curve"`
	Notional        float64   `json:"notional"`
	PremiumRate     float64   `json:"premium_rate"`
	PayTimes        []float64 `json:"pay_times"`
	Recovery        float64   `json:"recovery"`
	ProtectionBuyer bool      `json:"protection_buyer"`
}

// RiskInput selects which sensitivities to compute alongside the NPV.
// Empty fields are skipped. Bump sizes fall back to the service
// defaults when zero.
type RiskInput struct {
	PV01Curve   string  `json:"pv01_curve,omitempty"`
	CS01Curve   string  `json:"cs01_curve,omitempty"`
	FXDeltaPair string  `json:"fx_delta_pair,omitempty"`
	BumpBP      float64 `json:"bump_bp,omitempty"`
	FXBumpPct   float64 `json:"fx_bump_pct,omitempty"`
}
