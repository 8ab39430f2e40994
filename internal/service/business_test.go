package service

import (
	"errors"
	"math"
	"testing"

	"github.com/openquant/pricing-service/internal/valuation"
)

func TestPriceBondWithRisk(t *testing.T) {
	ps := newTestService(t)

	resp, err := ps.PriceBond(
		BondInput{Curve: "USD_DISC", Maturity: 2, Notional: 1_000_000},
		&RiskInput{PV01Curve: "USD_DISC"},
	)
	if err != nil {
		t.Fatalf("PriceBond: %v", err)
	}
	if want := 923116.35; math.Abs(resp.NPV-want) > 0.01 {
		t.Errorf("NPV = %.2f, want %.2f", resp.NPV, want)
	}
	if resp.Risk == nil || resp.Risk.PV01 == nil {
		t.Fatal("requested PV01 missing from response")
	}
	if want := -184.60; math.Abs(*resp.Risk.PV01-want) > 0.01 {
		t.Errorf("PV01 = %.2f, want %.2f", *resp.Risk.PV01, want)
	}
	if resp.Risk.CS01 != nil || resp.Risk.FXDelta != nil {
		t.Error("unrequested sensitivities must stay nil")
	}
	if resp.Kind != "ZeroCouponBond" {
		t.Errorf("kind = %q", resp.Kind)
	}
}

func TestPriceSwap(t *testing.T) {
	ps := newTestService(t)

	resp, err := ps.PriceSwap(SwapInput{
		Curve:     "USD_DISC",
		Notional:  10_000_000,
		FixedRate: 0.04,
		PayTimes:  []float64{0.5, 1, 1.5, 2},
	}, nil)
	if err != nil {
		t.Fatalf("PriceSwap: %v", err)
	}
	if want := 9151.15; math.Abs(resp.NPV-want) > 0.25 {
		t.Errorf("NPV = %.2f, want %.2f", resp.NPV, want)
	}
}

func TestPriceFXForwardWithDelta(t *testing.T) {
	ps := newTestService(t)

	resp, err := ps.PriceFXForward(FXForwardInput{
		Pair:         "EURUSD",
		BaseCurve:    "EUR_DISC",
		QuoteCurve:   "USD_DISC",
		Maturity:     1,
		NotionalBase: 5_000_000,
		Strike:       1.085,
	}, &RiskInput{FXDeltaPair: "EURUSD"})
	if err != nil {
		t.Fatalf("PriceFXForward: %v", err)
	}
	if want := 1980.59; math.Abs(resp.NPV-want) > 0.25 {
		t.Errorf("NPV = %.2f, want %.2f", resp.NPV, want)
	}
	if resp.Risk == nil || resp.Risk.FXDelta == nil {
		t.Fatal("requested fx delta missing from response")
	}
	if want := 4813564.70; math.Abs(*resp.Risk.FXDelta-want) > 1.0 {
		t.Errorf("fx delta = %.2f, want %.2f", *resp.Risk.FXDelta, want)
	}
}

func TestPriceMortgage(t *testing.T) {
	ps := newTestService(t)

	resp, err := ps.PriceMortgage(MortgageInput{
		Curve:           "USD_DISC",
		Notional:        500_000,
		AnnualRate:      0.06,
		TermYears:       5,
		PaymentsPerYear: 12,
	}, &RiskInput{PV01Curve: "USD_DISC"})
	if err != nil {
		t.Fatalf("PriceMortgage: %v", err)
	}
	if want := 525561.0; math.Abs(resp.NPV-want) > 2.0 {
		t.Errorf("NPV = %.2f, want %.0f", resp.NPV, want)
	}
	if resp.Risk == nil || resp.Risk.PV01 == nil {
		t.Fatal("requested PV01 missing from response")
	}
	if want := -129.46; math.Abs(*resp.Risk.PV01-want) > 0.05 {
		t.Errorf("PV01 = %.2f, want %.2f", *resp.Risk.PV01, want)
	}
}

func TestPriceMortgagePaymentFrequency(t *testing.T) {
	ps := newTestService(t)

	base := MortgageInput{
		Curve:      "USD_DISC",
		Notional:   500_000,
		AnnualRate: 0.06,
		TermYears:  5,
	}

	base.PaymentsPerYear = 12
	monthly, err := ps.PriceMortgage(base, nil)
	if err != nil {
		t.Fatalf("PriceMortgage monthly: %v", err)
	}

	base.PaymentsPerYear = 1
	annual, err := ps.PriceMortgage(base, nil)
	if err != nil {
		t.Fatalf("PriceMortgage annual: %v", err)
	}

	// The schedule frequency must reach the pricer: monthly and annual
	// amortization discount differently.
	if math.Abs(monthly.NPV-annual.NPV) < 1.0 {
		t.Errorf("monthly NPV %.2f and annual NPV %.2f should differ", monthly.NPV, annual.NPV)
	}
}

func TestPriceCDSWithCS01(t *testing.T) {
	ps := newTestService(t)

	in := CDSInput{
		DiscountCurve:   "USD_DISC",
		SurvivalCurve:   "CORP_HAZ",
		Notional:        10_000_000,
		PremiumRate:     0.01,
		PayTimes:        []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
		Recovery:        0.4,
		ProtectionBuyer: true,
	}
	resp, err := ps.PriceCDS(in, &RiskInput{CS01Curve: "CORP_HAZ"})
	if err != nil {
		t.Fatalf("PriceCDS: %v", err)
	}
	if want := -171924.0; math.Abs(resp.NPV-want) > 2.0 {
		t.Errorf("NPV = %.2f, want %.0f", resp.NPV, want)
	}
	if resp.Risk == nil || resp.Risk.CS01 == nil {
		t.Fatal("requested CS01 missing from response")
	}
	if want := 2709.43; math.Abs(*resp.Risk.CS01-want) > 0.5 {
		t.Errorf("CS01 = %.2f, want %.2f", *resp.Risk.CS01, want)
	}

	spread, err := ps.CDSFairSpread(in)
	if err != nil {
		t.Fatalf("CDSFairSpread: %v", err)
	}
	if spread < 0.004 || spread > 0.008 {
		t.Errorf("fair spread = %v, outside plausible range", spread)
	}
}

func TestPriceRejectsBadTerms(t *testing.T) {
	ps := newTestService(t)

	_, err := ps.PriceBond(BondInput{Curve: "USD_DISC", Maturity: -1, Notional: 1e6}, nil)
	var cfgErr *valuation.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestPriceMissingCurveSurfacesMarketDataError(t *testing.T) {
	ps := newTestService(t)

	_, err := ps.PriceBond(BondInput{Curve: "NOPE", Maturity: 1, Notional: 1e6}, nil)
	var mdErr *valuation.MarketDataError
	if !errors.As(err, &mdErr) {
		t.Fatalf("expected MarketDataError, got %v", err)
	}
}
