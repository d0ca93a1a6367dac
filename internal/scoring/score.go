// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes supply chain risk metrics from aggregated
// trade maps.
//
// The composite SCRI averages three dimensions: import concentration
// (HHI), lack of supplier diversity, and import dependency. An earlier
// formulation multiplied the factors instead, which collapsed the
// score to zero whenever any single factor was zero; the averaged form
// stays sensitive to the remaining dimensions and is the one computed
// here. Similarly, the diversity denominator was once a fixed 193
// (roughly the UN member count); it is now data driven, the number of
// countries observed exporting the commodity globally that year.
package scoring

import (
	"errors"
	"math"

	"github.com/pdiddy/resilience-engine/pkg/types"
)

// ErrNoImportData signals that scoring is undefined: the country
// reported no usable imports for this commodity and year. Callers
// surface this as "no data", never as a zero score.
var ErrNoImportData = errors.New("scoring: no import data")

// Score derives a ScoreResult from the two direction maps and the
// diversity denominator (the count of countries exporting the
// commodity globally). It returns ErrNoImportData when the import map
// is empty. All reported metrics are rounded to 4 decimal places.
func Score(imports, exports types.PartnerValueMap, diversityDenominator int) (types.ScoreResult, error) {
	if len(imports) == 0 {
		return types.ScoreResult{}, ErrNoImportData
	}

	m := imports.Total()
	x := exports.Total()
	n := len(imports)

	var hhi float64
	if m > 0 {
		for _, v := range imports {
			share := v / m
			hhi += share * share
		}
	}

	diversity := 1.0
	if diversityDenominator > 0 {
		diversity = math.Min(float64(n)/float64(diversityDenominator), 1.0)
	}

	var idi float64
	if m > 0 {
		idi = clamp((m-x)/m, 0, 1)
	}

	scri := (hhi + (1 - diversity) + idi) / 3

	return types.ScoreResult{
		TotalImports:       m,
		TotalExports:       x,
		HHI:                round4(hhi),
		DiversityScore:     round4(diversity),
		IDI:                round4(idi),
		SCRI:               round4(scri),
		ImportPartnerCount: n,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
