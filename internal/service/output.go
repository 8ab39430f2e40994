package service

import (
	"time"
)

// RiskResult holds the sensitivities a request asked for. Nil fields
// were not requested.
type RiskResult struct {
	PV01    *float64 `json:"pv01,omitempty"`
	CS01    *float64 `json:"cs01,omitempty"`
	FXDelta *float64 `json:"fx_delta,omitempty"`
}

type PriceResponse struct {
	Kind     string      `json:"kind"`
	NPV      float64     `json:"npv"`
	Risk     *RiskResult `json:"risk,omitempty"`
	Revision int         `json:"revision"`
	Explain  string      `json:"explain"`
}

// MarketInfo summarizes the live market for health and inspection
// endpoints.
type MarketInfo struct {
	CurveNames []string  `json:"curve_names"`
	FXPairs    []string  `json:"fx_pairs"`
	Revision   int       `json:"revision"`
	AsOf       time.Time `json:"as_of"`
}
