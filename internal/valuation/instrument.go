package valuation

// Instrument is the marker contract for priceable products. Instruments are
// data only: contractual terms, no market access, no pricing methods.
// Kind is used in dispatch-miss errors and blotter labels.
type Instrument interface {
	Kind() string
}

// ZeroCouponBond pays notional at maturity, discounted on the named curve.
type ZeroCouponBond struct {
	CurveName string
	Maturity  float64
	Notional  float64
}

func (ZeroCouponBond) Kind() string { return "ZeroCouponBond" }

// Validate checks the contractual terms.
func (b ZeroCouponBond) Validate() error {
	if b.Maturity <= 0 {
		return &ConfigurationError{Reason: "bond maturity must be positive"}
	}
	return nil
}

// FixedFloatSwap is a single-curve receive-float pay-fixed swap. Accrual
// fractions are inferred from successive pay times starting at T0.
type FixedFloatSwap struct {
	CurveName string
	Notional  float64
	FixedRate float64
	PayTimes  []float64
	T0        float64
}

func (FixedFloatSwap) Kind() string { return "FixedFloatSwap" }

// Validate checks the payment schedule.
func (s FixedFloatSwap) Validate() error {
	if len(s.PayTimes) == 0 {
		return &ConfigurationError{Reason: "swap pay_times must not be empty"}
	}
	prev := s.T0
	for _, t := range s.PayTimes {
		if t <= prev {
			return &ConfigurationError{Reason: "swap pay_times must be strictly increasing from t0"}
		}
		prev = t
	}
	return nil
}

// FXForward settles notional in the base currency against strike in the
// quote currency at maturity. Pair is e.g. "EURUSD" (base EUR, quote USD);
// valuation is covered interest parity on the two named curves.
type FXForward struct {
	Pair         string
	BaseCurve    string
	QuoteCurve   string
	Maturity     float64
	NotionalBase float64
	Strike       float64
}

func (FXForward) Kind() string { return "FXForward" }

// Validate checks maturity and strike.
func (f FXForward) Validate() error {
	if f.Maturity <= 0 {
		return &ConfigurationError{Reason: "fx forward maturity must be positive"}
	}
	if f.Strike <= 0 {
		return &ConfigurationError{Reason: "fx forward strike must be positive"}
	}
	return nil
}

// LevelPayMortgage is a fixed-rate level-payment mortgage, no prepayment.
// Value to the lender is the PV of all level payments on the named curve.
type LevelPayMortgage struct {
	CurveName       string
	Notional        float64
	AnnualRate      float64
	TermYears       float64
	PaymentsPerYear int
}

func (LevelPayMortgage) Kind() string { return "LevelPayMortgage" }

// Validate checks the amortization terms.
func (m LevelPayMortgage) Validate() error {
	if m.Notional <= 0 {
		return &ConfigurationError{Reason: "mortgage notional must be positive"}
	}
	if m.AnnualRate < 0 {
		return &ConfigurationError{Reason: "mortgage annual rate must be non-negative"}
	}
	if m.TermYears <= 0 {
		return &ConfigurationError{Reason: "mortgage term must be positive"}
	}
	if m.PaymentsPerYear < 1 {
		return &ConfigurationError{Reason: "mortgage payments per year must be at least 1"}
	}
	return nil
}

// CDS is a single-name credit default swap, protection buyer convention by
// default. DiscountCurve provides DF(t); SurvivalCurve provides S(t).
type CDS struct {
	DiscountCurve   string
	SurvivalCurve   string
	Notional        float64
	PremiumRate     float64
	PayTimes        []float64
	Recovery        float64
	T0              float64
	ProtectionBuyer bool
}

func (CDS) Kind() string { return "CDS" }

// Validate checks the schedule and recovery rate.
func (c CDS) Validate() error {
	if len(c.PayTimes) == 0 {
		return &ConfigurationError{Reason: "cds pay_times must not be empty"}
	}
	prev := c.T0
	for _, t := range c.PayTimes {
		if t <= prev {
			return &ConfigurationError{Reason: "cds pay_times must be strictly increasing from t0"}
		}
		prev = t
	}
	if c.Recovery < 0 || c.Recovery > 1 {
		return &ConfigurationError{Reason: "cds recovery must be in [0,1]"}
	}
	return nil
}
