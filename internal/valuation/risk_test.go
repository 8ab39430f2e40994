package valuation

import (
	"errors"
	"math"
	"testing"
)

func TestParallelPV01Bond(t *testing.T) {
	m := sampleMarket(t)
	bond := ZeroCouponBond{CurveName: "USD_DISC", Maturity: 2, Notional: 1_000_000}

	pv01, err := ParallelPV01(bond, m, "USD_DISC", 1.0)
	if err != nil {
		t.Fatalf("ParallelPV01: %v", err)
	}
	if want := -184.60; math.Abs(pv01-want) > 0.01 {
		t.Errorf("PV01 = %.2f, want %.2f", pv01, want)
	}

	// The base market must survive the bump untouched.
	base, _ := Price(bond, m)
	if want := 923116.35; math.Abs(base-want) > 0.01 {
		t.Errorf("base NPV corrupted after bump: %.2f", base)
	}
}

func TestParallelPV01Mortgage(t *testing.T) {
	m := sampleMarket(t)
	mort := LevelPayMortgage{CurveName: "USD_DISC", Notional: 500_000, AnnualRate: 0.06, TermYears: 5, PaymentsPerYear: 12}

	pv01, err := ParallelPV01(mort, m, "USD_DISC", 1.0)
	if err != nil {
		t.Fatalf("ParallelPV01: %v", err)
	}
	if want := -129.46; math.Abs(pv01-want) > 0.05 {
		t.Errorf("PV01 = %.2f, want %.2f", pv01, want)
	}
}

func TestSpotFXDelta(t *testing.T) {
	m := sampleMarket(t)
	fwd := FXForward{Pair: "EURUSD", BaseCurve: "EUR_DISC", QuoteCurve: "USD_DISC", Maturity: 1, NotionalBase: 5_000_000, Strike: 1.085}

	delta, err := SpotFXDelta(fwd, m, "EURUSD", 0.01)
	if err != nil {
		t.Fatalf("SpotFXDelta: %v", err)
	}
	if want := 4813564.70; math.Abs(delta-want) > 1.0 {
		t.Errorf("FX delta = %.2f, want %.2f", delta, want)
	}
}

func TestParallelCS01CDS(t *testing.T) {
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

	cs01, err := ParallelCS01(cds, m, "CORP_HAZ", 1.0)
	if err != nil {
		t.Fatalf("ParallelCS01: %v", err)
	}
	if want := 2709.43; math.Abs(cs01-want) > 0.5 {
		t.Errorf("CS01 = %.2f, want %.2f", cs01, want)
	}
	// Protection buyer gains when default risk rises.
	if cs01 < 0 {
		t.Errorf("CS01 = %v, must be non-negative for a protection buyer", cs01)
	}
}

func TestMeasureNames(t *testing.T) {
	tests := []struct {
		measure Measure
		want    string
	}{
		{PV01Parallel{CurveName: "USD_DISC", BumpBP: 1}, "PV01_USD_DISC"},
		{CS01Parallel{HazardCurveName: "CORP_HAZ", BumpBP: 1}, "CS01_CORP_HAZ"},
		{FXDelta{Pair: "EURUSD", BumpPct: 0.01}, "FXDelta_EURUSD"},
	}
	for _, tt := range tests {
		if got := tt.measure.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestRiskMissingCurve(t *testing.T) {
	m := sampleMarket(t)
	bond := ZeroCouponBond{CurveName: "USD_DISC", Maturity: 2, Notional: 1e6}

	_, err := ParallelPV01(bond, m, "GONE", 1.0)
	var mdErr *MarketDataError
	if !errors.As(err, &mdErr) {
		t.Fatalf("expected MarketDataError, got %v", err)
	}
}
