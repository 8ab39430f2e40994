package service

import (
	"github.com/openquant/pricing-service/internal/storage"
)

const (
	// DefaultBumpBP is the parallel bump used for PV01 and CS01 when a
	// request does not override it.
	DefaultBumpBP = 1.0
	// DefaultFXBumpPct is the relative spot bump used for fx delta.
	DefaultFXBumpPct = 0.01
)

// Use types from storage package for consistency
type MarketSnapshot = storage.MarketSnapshot
type CurveSnapshot = storage.CurveSnapshot
type HazardSnapshot = storage.HazardSnapshot
type CurveUpdate = storage.CurveUpdate
