package service

import (
	"fmt"
	"time"

	"github.com/openquant/pricing-service/internal/storage"
	"github.com/openquant/pricing-service/internal/valuation"
)

func buildMarket(input MarketInput) (*valuation.Market, error) {
	curves := make(map[string]valuation.Curve, len(input.Curves)+len(input.HazardCurves))
	for _, c := range input.Curves {
		zc, err := valuation.NewZeroRateCurve(c.Name, c.Pillars, c.ZeroRatesCC)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", c.Name, err)
		}
		curves[c.Name] = zc
	}
	for _, h := range input.HazardCurves {
		hc, err := valuation.NewHazardRateCurve(h.Name, h.Pillars, h.Hazards)
		if err != nil {
			return nil, fmt.Errorf("hazard curve %q: %w", h.Name, err)
		}
		curves[h.Name] = hc
	}
	return valuation.NewMarket(curves, input.FXSpot), nil
}

func marketFromSnapshot(snapshot *storage.MarketSnapshot) (*valuation.Market, error) {
	input := MarketInput{FXSpot: snapshot.FXSpot}
	for _, c := range snapshot.Curves {
		input.Curves = append(input.Curves, CurveInput{Name: c.Name, Pillars: c.Pillars, ZeroRatesCC: c.ZeroRatesCC})
	}
	for _, h := range snapshot.HazardCurves {
		input.HazardCurves = append(input.HazardCurves, HazardCurveInput{Name: h.Name, Pillars: h.Pillars, Hazards: h.Hazards})
	}
	return buildMarket(input)
}

func snapshotFromMarket(market *valuation.Market, revision int, asOf time.Time) *storage.MarketSnapshot {
	snapshot := &storage.MarketSnapshot{
		FXSpot:   make(map[string]float64),
		Revision: revision,
		AsOf:     asOf,
	}
	for _, name := range market.CurveNames() {
		c, err := market.Curve(name)
		if err != nil {
			continue
		}
		switch curve := c.(type) {
		case *valuation.ZeroRateCurve:
			snapshot.Curves = append(snapshot.Curves, storage.CurveSnapshot{
				Name:        name,
				Pillars:     curve.Pillars(),
				ZeroRatesCC: curve.Rates(),
				AsOf:        asOf,
			})
		case *valuation.HazardRateCurve:
			snapshot.HazardCurves = append(snapshot.HazardCurves, storage.HazardSnapshot{
				Name:    name,
				Pillars: curve.Pillars(),
				Hazards: curve.Hazards(),
				AsOf:    asOf,
			})
		}
	}
	for _, pair := range market.FXPairs() {
		spot, err := market.FX(pair)
		if err != nil {
			continue
		}
		snapshot.FXSpot[pair] = spot
	}
	return snapshot
}
