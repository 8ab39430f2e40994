package service

import (
	"fmt"

	"github.com/openquant/pricing-service/internal/valuation"
)

// PriceBond values a zero coupon bond against the live market.
func (ps *PricingService) PriceBond(in BondInput, risk *RiskInput) (*PriceResponse, error) {
	inst := valuation.ZeroCouponBond{CurveName: in.Curve, Maturity: in.Maturity, Notional: in.Notional}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return ps.price(inst, risk, fmt.Sprintf("curve=%s maturity=%.4gy", in.Curve, in.Maturity))
}

// PriceSwap values a fixed-for-float swap against the live market.
func (ps *PricingService) PriceSwap(in SwapInput, risk *RiskInput) (*PriceResponse, error) {
	inst := valuation.FixedFloatSwap{CurveName: in.Curve, Notional: in.Notional, FixedRate: in.FixedRate, PayTimes: in.PayTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return ps.price(inst, risk, fmt.Sprintf("curve=%s fixed=%.4f periods=%d", in.Curve, in.FixedRate, len(in.PayTimes)))
}

// PriceFXForward values an fx forward against the live market.
func (ps *PricingService) PriceFXForward(in FXForwardInput, risk *RiskInput) (*PriceResponse, error) {
	inst := valuation.FXForward{
		Pair:         in.Pair,
		BaseCurve:    in.BaseCurve,
		QuoteCurve:   in.QuoteCurve,
		Maturity:     in.Maturity,
		NotionalBase: in.NotionalBase,
		Strike:       in.Strike,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return ps.price(inst, risk, fmt.Sprintf("pair=%s strike=%.4f maturity=%.4gy", in.Pair, in.Strike, in.Maturity))
}

// PriceMortgage values a level-pay mortgage against the live market.
func (ps *PricingService) PriceMortgage(in MortgageInput, risk *RiskInput) (*PriceResponse, error) {
	inst := valuation.LevelPayMortgage{
		CurveName:       in.Curve,
		Notional:        in.Notional,
		AnnualRate:      in.AnnualRate,
		TermYears:       in.TermYears,
		PaymentsPerYear: in.PaymentsPerYear,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return ps.price(inst, risk, fmt.Sprintf("curve=%s rate=%.4f term=%.4gy", in.Curve, in.AnnualRate, in.TermYears))
}

// PriceCDS values a credit default swap against the live market.
func (ps *PricingService) PriceCDS(in CDSInput, risk *RiskInput) (*PriceResponse, error) {
	inst := cdsFromInput(in)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	side := "seller"
	if in.ProtectionBuyer {
		side = "buyer"
	}
	return ps.price(inst, risk, fmt.Sprintf("disc=%s surv=%s premium=%.4f side=%s", in.DiscountCurve, in.SurvivalCurve, in.PremiumRate, side))
}

// CDSFairSpread returns the premium rate that zeroes the CDS NPV on
// the live market.
func (ps *PricingService) CDSFairSpread(in CDSInput) (float64, error) {
	inst := cdsFromInput(in)
	if err := inst.Validate(); err != nil {
		return 0, err
	}
	market, err := ps.Market()
	if err != nil {
		return 0, err
	}
	return valuation.FairSpread(inst, market)
}

func cdsFromInput(in CDSInput) valuation.CDS {
	return valuation.CDS{
		DiscountCurve:   in.DiscountCurve,
		SurvivalCurve:   in.SurvivalCurve,
		Notional:        in.Notional,
		PremiumRate:     in.PremiumRate,
		PayTimes:        in.PayTimes,
		Recovery:        in.Recovery,
		ProtectionBuyer: in.ProtectionBuyer,
	}
}

// price runs one instrument through the engine, computes any requested
// sensitivities on the same market snapshot and assembles the response.
func (ps *PricingService) price(inst valuation.Instrument, risk *RiskInput, detail string) (*PriceResponse, error) {
	market, err := ps.Market()
	if err != nil {
		return nil, err
	}

	ps.mu.RLock()
	revision := ps.revision
	ps.mu.RUnlock()

	npv, err := ps.engine.Price(inst, market)
	if err != nil {
		return nil, err
	}

	resp := &PriceResponse{
		Kind:     inst.Kind(),
		NPV:      npv,
		Revision: revision,
		Explain:  fmt.Sprintf("%s: %s", inst.Kind(), detail),
	}

	if risk != nil {
		result, err := ps.computeRisk(inst, market, risk)
		if err != nil {
			return nil, err
		}
		resp.Risk = result
	}

	return resp, nil
}

func (ps *PricingService) computeRisk(inst valuation.Instrument, market *valuation.Market, risk *RiskInput) (*RiskResult, error) {
	bumpBP := risk.BumpBP
	if bumpBP == 0 {
		bumpBP = DefaultBumpBP
	}
	fxBumpPct := risk.FXBumpPct
	if fxBumpPct == 0 {
		fxBumpPct = DefaultFXBumpPct
	}

	result := &RiskResult{}

	if risk.PV01Curve != "" {
		pv01, err := valuation.ParallelPV01(inst, market, risk.PV01Curve, bumpBP)
		if err != nil {
			return nil, fmt.Errorf("pv01: %w", err)
		}
		result.PV01 = &pv01
	}
	if risk.CS01Curve != "" {
		cs01, err := valuation.ParallelCS01(inst, market, risk.CS01Curve, bumpBP)
		if err != nil {
			return nil, fmt.Errorf("cs01: %w", err)
		}
		result.CS01 = &cs01
	}
	if risk.FXDeltaPair != "" {
		delta, err := valuation.SpotFXDelta(inst, market, risk.FXDeltaPair, fxBumpPct)
		if err != nil {
			return nil, fmt.Errorf("fx delta: %w", err)
		}
		result.FXDelta = &delta
	}

	return result, nil
}
