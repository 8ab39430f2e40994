package storage

import (
	"time"
)

// CurveSnapshot is the serialized form of a zero curve: pillar times in
// years and continuously compounded zero rates, one per pillar.
type CurveSnapshot struct {
	Name        string    `json:"name"`
	Pillars     []float64 `json:"pillars"`
	ZeroRatesCC []float64 `json:"zero_rates_cc"`
	AsOf        time.Time `json:"as_of"`
}

// HazardSnapshot is the serialized form of a hazard curve: pillar times
// and piecewise-constant hazard rates.
type HazardSnapshot struct {
	Name    string    `json:"name"`
	Pillars []float64 `json:"pillars"`
	Hazards []float64 `json:"hazards"`
	AsOf    time.Time `json:"as_of"`
}

// MarketSnapshot is a full market backup: every curve, every fx spot,
// tagged with a revision so consumers can detect staleness.
type MarketSnapshot struct {
	Curves       []CurveSnapshot    `json:"curves"`
	HazardCurves []HazardSnapshot   `json:"hazard_curves"`
	FXSpot       map[string]float64 `json:"fx_spot"`
	Revision     int                `json:"revision"`
	AsOf         time.Time          `json:"as_of"`
}

// CurveUpdate is one tick of a live curve feed. Updates carry the whole
// replacement curve rather than deltas, so a consumer that missed ticks
// can still apply the latest one and be correct.
type CurveUpdate struct {
	Curve       string    `json:"curve"`
	Pillars     []float64 `json:"pillars"`
	ZeroRatesCC []float64 `json:"zero_rates_cc"`
	Seq         int64     `json:"seq"`
	PublishedAt time.Time `json:"published_at"`
}
