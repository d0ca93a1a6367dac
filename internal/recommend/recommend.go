// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend suggests diversification targets: the top global
// exporters of a commodity that a country is not already buying from.
package recommend

import (
	"context"
	"errors"
	"sort"

	"github.com/pdiddy/resilience-engine/pkg/types"
)

// ErrNoCandidates signals that after excluding the country itself and
// its existing suppliers, no exporter remains. Distinct from a query
// that was never run.
var ErrNoCandidates = errors.New("recommend: no exporter candidates")

const defaultTop = 3

// ExporterSource supplies cumulative export totals per reporter, in
// fetch order. The trade service implements this through its cache.
type ExporterSource interface {
	ExporterTotals(ctx context.Context, commodity string, year int) []types.ExporterCandidate
}

// TopExporters returns at most k global exporters of the commodity,
// ranked by cumulative export value, excluding the target country
// (matched by code) and its current import partners.
//
// Partner exclusion matches exporter NAMES against the import-partner
// name set, not codes: the aggregates upstream are keyed by
// description, and tightening this to a code join could silently
// change which countries are recommended. The sort is stable, so
// exporters with equal value keep their original fetch order.
func TopExporters(ctx context.Context, src ExporterSource, commodity string, year int, excludePartners map[string]struct{}, excludeCountryCode string, k int) ([]types.ExporterCandidate, error) {
	if k <= 0 {
		k = defaultTop
	}

	candidates := src.ExporterTotals(ctx, commodity, year)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Value > candidates[j].Value
	})

	var picked []types.ExporterCandidate
	for _, c := range candidates {
		if c.CountryCode == excludeCountryCode {
			continue
		}
		if _, used := excludePartners[c.CountryName]; used {
			continue
		}
		picked = append(picked, c)
		if len(picked) == k {
			break
		}
	}

	if len(picked) == 0 {
		return nil, ErrNoCandidates
	}
	return picked, nil
}

// PartnerSet converts a partner-value map into the exclusion set
// TopExporters expects.
func PartnerSet(partners types.PartnerValueMap) map[string]struct{} {
	set := make(map[string]struct{}, len(partners))
	for name := range partners {
		set[name] = struct{}{}
	}
	return set
}
