package valuation

import (
	"errors"
	"math"
	"testing"
)

// Sample market used across pricer and risk tests: USD and EUR discount
// curves on the same pillar grid, a flat 1% hazard curve and EURUSD spot.
func sampleMarket(t *testing.T) *Market {
	t.Helper()
	pillars := []float64{0.5, 1, 2, 5, 10}
	usd, err := NewZeroRateCurve("USD_DISC", pillars, []float64{0.045, 0.043, 0.040, 0.038, 0.037})
	if err != nil {
		t.Fatalf("usd curve: %v", err)
	}
	eur, err := NewZeroRateCurve("EUR_DISC", pillars, []float64{0.040, 0.038, 0.036, 0.034, 0.033})
	if err != nil {
		t.Fatalf("eur curve: %v", err)
	}
	haz, err := NewHazardRateCurve("CORP_HAZ", pillars, []float64{0.01, 0.01, 0.01, 0.01, 0.01})
	if err != nil {
		t.Fatalf("hazard curve: %v", err)
	}
	return NewMarket(
		map[string]Curve{"USD_DISC": usd, "EUR_DISC": eur, "CORP_HAZ": haz},
		map[string]float64{"EURUSD": 1.08},
	)
}

func semiannualTimes(years float64) []float64 {
	n := int(years * 2)
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i+1) * 0.5
	}
	return times
}

func TestBondPricerScenario(t *testing.T) {
	m := sampleMarket(t)
	bond := ZeroCouponBond{CurveName: "USD_DISC", Maturity: 2.0, Notional: 1_000_000}

	npv, err := Price(bond, m)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if want := 923116.35; math.Abs(npv-want) > 0.01 {
		t.Errorf("bond NPV = %.2f, want %.2f", npv, want)
	}

	// Idempotent over immutable inputs.
	again, _ := Price(bond, m)
	if again != npv {
		t.Errorf("repeated Price differs: %v vs %v", again, npv)
	}
}

func TestSwapPricerScenario(t *testing.T) {
	m := sampleMarket(t)
	swap := FixedFloatSwap{
		CurveName: "USD_DISC",
		Notional:  10_000_000,
		FixedRate: 0.04,
		PayTimes:  []float64{0.5, 1, 1.5, 2},
	}

	npv, err := Price(swap, m)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if want := 9151.15; math.Abs(npv-want) > 0.25 {
		t.Errorf("swap NPV = %.2f, want %.2f", npv, want)
	}
}

func TestSwapFloatLegTelescopes(t *testing.T) {
	m := sampleMarket(t)
	c, _ := m.Curve("USD_DISC")

	schedules := [][]float64{
		{0.5, 1, 1.5, 2},
		{1, 2, 3, 4, 5},
		{0.25, 0.75, 2, 7.5},
	}
	for _, payTimes := range schedules {
		swap := FixedFloatSwap{CurveName: "USD_DISC", Notional: 1_000_000, PayTimes: payTimes}
		got := pvFloatLeg(swap, c)
		last := payTimes[len(payTimes)-1]
		want := swap.Notional * (1.0 - c.DF(last))
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("float leg %v = %v, want telescoped %v", payTimes, got, want)
		}
	}
}

func TestFXPricerScenario(t *testing.T) {
	m := sampleMarket(t)
	fwd := FXForward{
		Pair:         "EURUSD",
		BaseCurve:    "EUR_DISC",
		QuoteCurve:   "USD_DISC",
		Maturity:     1.0,
		NotionalBase: 5_000_000,
		Strike:       1.085,
	}

	npv, err := Price(fwd, m)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if want := 1980.59; math.Abs(npv-want) > 0.25 {
		t.Errorf("fx forward NPV = %.2f, want %.2f", npv, want)
	}
}

func TestMortgagePricerScenario(t *testing.T) {
	m := sampleMarket(t)
	mort := LevelPayMortgage{
		CurveName:       "USD_DISC",
		Notional:        500_000,
		AnnualRate:      0.06,
		TermYears:       5,
		PaymentsPerYear: 12,
	}

	npv, err := Price(mort, m)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if want := 525561.0; math.Abs(npv-want) > 2.0 {
		t.Errorf("mortgage NPV = %.2f, want %.0f", npv, want)
	}
}

func TestMortgageZeroRatePaysPrincipalOverN(t *testing.T) {
	// r=0 degenerates the annuity formula; payment must fall back to notional/n.
	flat, _ := NewZeroRateCurve("FLAT", []float64{1}, []float64{0.0})
	m := NewMarket(map[string]Curve{"FLAT": flat}, nil)
	mort := LevelPayMortgage{CurveName: "FLAT", Notional: 120_000, AnnualRate: 0, TermYears: 1, PaymentsPerYear: 12}

	npv, err := Price(mort, m)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	// Zero rate and zero discounting: PV equals the notional exactly.
	if math.Abs(npv-120_000) > 1e-6 {
		t.Errorf("NPV = %v, want 120000", npv)
	}
}

func TestCDSPricerScenario(t *testing.T) {
	m := sampleMarket(t)
	cds := CDS{
		DiscountCurve:   "USD_DISC",
		SurvivalCurve:   "CORP_HAZ",
		Notional:        10_000_000,
		PremiumRate:     0.01,
		PayTimes:        semiannualTimes(5),
		Recovery:        0.4,
		ProtectionBuyer: true,
	}

	npv, err := Price(cds, m)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if want := -171924.0; math.Abs(npv-want) > 2.0 {
		t.Errorf("cds NPV = %.2f, want %.0f", npv, want)
	}

	// Seller side is the exact negation.
	seller := cds
	seller.ProtectionBuyer = false
	sellerNPV, _ := Price(seller, m)
	if math.Abs(sellerNPV+npv) > 1e-9 {
		t.Errorf("seller NPV = %v, want %v", sellerNPV, -npv)
	}
}

func TestCDSFairSpread(t *testing.T) {
	m := sampleMarket(t)
	cds := CDS{
		DiscountCurve:   "USD_DISC",
		SurvivalCurve:   "CORP_HAZ",
		Notional:        10_000_000,
		PremiumRate:     0.01,
		PayTimes:        semiannualTimes(5),
		Recovery:        0.4,
		ProtectionBuyer: true,
	}

	spread, err := FairSpread(cds, m)
	if err != nil {
		t.Fatalf("FairSpread: %v", err)
	}

	// Repricing at the fair spread must zero the NPV.
	atFair := cds
	atFair.PremiumRate = spread
	npv, _ := Price(atFair, m)
	if math.Abs(npv) > 1e-6 {
		t.Errorf("NPV at fair spread = %v, want 0", npv)
	}

	// Flat 1% hazard with 40% recovery puts the fair spread near 60bp.
	if spread < 0.004 || spread > 0.008 {
		t.Errorf("fair spread = %v, outside plausible range", spread)
	}
}

func TestPricerMissingCurvePropagates(t *testing.T) {
	m := NewMarket(nil, nil)
	var mdErr *MarketDataError

	_, err := Price(ZeroCouponBond{CurveName: "NOPE", Maturity: 1, Notional: 1}, m)
	if !errors.As(err, &mdErr) {
		t.Errorf("bond: expected MarketDataError, got %v", err)
	}
	_, err = Price(FXForward{Pair: "EURUSD", BaseCurve: "E", QuoteCurve: "U", Maturity: 1, NotionalBase: 1, Strike: 1}, m)
	if !errors.As(err, &mdErr) {
		t.Errorf("fx forward: expected MarketDataError, got %v", err)
	}
}

func TestPricerRejectsWrongInstrument(t *testing.T) {
	m := sampleMarket(t)
	bond := ZeroCouponBond{CurveName: "USD_DISC", Maturity: 1, Notional: 1}

	_, err := SwapPricer{}.NPV(bond, m)
	var uiErr *UnsupportedInstrumentError
	if !errors.As(err, &uiErr) {
		t.Fatalf("expected UnsupportedInstrumentError, got %v", err)
	}
}
