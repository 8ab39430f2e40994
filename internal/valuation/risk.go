package valuation

import "fmt"

// Measure is a composable sensitivity: immutable configuration plus a
// Compute over (instrument, market). All built-in measures are
// bump-and-reprice: derive a perturbed market with WithCurve/WithFX and
// take the signed NPV difference. Direction is meaningful and kept.
type Measure interface {
	Name() string
	Compute(instrument Instrument, market *Market) (float64, error)
}

// PV01Parallel is the NPV change for a parallel shift of one rate curve by
// BumpBP basis points (additive in absolute rate terms, 1bp = 0.0001).
type PV01Parallel struct {
	CurveName string
	BumpBP    float64
}

func (m PV01Parallel) Name() string {
	return fmt.Sprintf("PV01_%s", m.CurveName)
}

func (m PV01Parallel) Compute(instrument Instrument, market *Market) (float64, error) {
	return bumpCurveAndReprice(instrument, market, m.CurveName, m.BumpBP)
}

// CS01Parallel is the NPV change for a parallel shift of one hazard curve by
// BumpBP basis points.
type CS01Parallel struct {
	HazardCurveName string
	BumpBP          float64
}

func (m CS01Parallel) Name() string {
	return fmt.Sprintf("CS01_%s", m.HazardCurveName)
}

func (m CS01Parallel) Compute(instrument Instrument, market *Market) (float64, error) {
	return bumpCurveAndReprice(instrument, market, m.HazardCurveName, m.BumpBP)
}

// FXDelta is the NPV change per unit spot move: the spot is bumped by the
// relative factor (1 + BumpPct) and the difference is divided by the
// realized spot delta, not the nominal spot*pct.
type FXDelta struct {
	Pair    string
	BumpPct float64
}

func (m FXDelta) Name() string {
	return fmt.Sprintf("FXDelta_%s", m.Pair)
}

func (m FXDelta) Compute(instrument Instrument, market *Market) (float64, error) {
	spot, err := market.FX(m.Pair)
	if err != nil {
		return 0, err
	}
	spotBumped := spot * (1.0 + m.BumpPct)
	base, err := Price(instrument, market)
	if err != nil {
		return 0, err
	}
	bumped, err := Price(instrument, market.WithFX(m.Pair, spotBumped))
	if err != nil {
		return 0, err
	}
	return (bumped - base) / (spotBumped - spot), nil
}

func bumpCurveAndReprice(instrument Instrument, market *Market, curveName string, bumpBP float64) (float64, error) {
	curve, err := market.Curve(curveName)
	if err != nil {
		return 0, err
	}
	bumpedMarket := market.WithCurve(curveName, curve.Bumped(bumpBP/10000.0))
	base, err := Price(instrument, market)
	if err != nil {
		return 0, err
	}
	bumped, err := Price(instrument, bumpedMarket)
	if err != nil {
		return 0, err
	}
	return bumped - base, nil
}

// ParallelPV01 is the one-call form of PV01Parallel.
func ParallelPV01(instrument Instrument, market *Market, curveName string, bumpBP float64) (float64, error) {
	return PV01Parallel{CurveName: curveName, BumpBP: bumpBP}.Compute(instrument, market)
}

// ParallelCS01 is the one-call form of CS01Parallel.
func ParallelCS01(instrument Instrument, market *Market, hazardCurveName string, bumpBP float64) (float64, error) {
	return CS01Parallel{HazardCurveName: hazardCurveName, BumpBP: bumpBP}.Compute(instrument, market)
}

// SpotFXDelta is the one-call form of FXDelta.
func SpotFXDelta(instrument Instrument, market *Market, pair string, bumpPct float64) (float64, error) {
	return FXDelta{Pair: pair, BumpPct: bumpPct}.Compute(instrument, market)
}
