// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trade turns raw Comtrade records into per-partner aggregates
// and serves them through the query cache.
package trade

import (
	"strings"

	"github.com/pdiddy/resilience-engine/pkg/types"
)

// excludedPartnerTerms mark rows that are statistical aggregates, not
// real bilateral partners. Matching is a case-insensitive substring
// test so "World", "world" and "Rest of World" are all rejected.
var excludedPartnerTerms = []string{"world"}

// IsValidPartner reports whether a partner description names a real
// bilateral partner. Empty descriptions and aggregate rows are not
// valid.
func IsValidPartner(partner string) bool {
	if partner == "" {
		return false
	}
	lowered := strings.ToLower(partner)
	for _, term := range excludedPartnerTerms {
		if strings.Contains(lowered, term) {
			return false
		}
	}
	return true
}

// AggregatePartners sums records into a partner-name keyed value map.
// A non-empty flow keeps only records of that direction; a non-empty
// reporter keeps only records reported by that country. Records with
// invalid partners or unparseable or non-positive values are dropped,
// never zeroed, so every stored value is strictly positive. Duplicate
// partners accumulate.
func AggregatePartners(records []types.TradeRecord, flow types.Flow, reporter string) types.PartnerValueMap {
	partners := make(types.PartnerValueMap)
	for _, rec := range records {
		if flow != types.FlowAll && rec.FlowCode != flow {
			continue
		}
		if reporter != "" && string(rec.ReporterCode) != reporter {
			continue
		}
		if !IsValidPartner(rec.PartnerDesc) {
			continue
		}
		if !rec.PrimaryValue.Valid || rec.PrimaryValue.Amount <= 0 {
			continue
		}
		partners[rec.PartnerDesc] += rec.PrimaryValue.Amount
	}
	return partners
}

// Snapshot holds both direction maps for one country/commodity/year
// plus the count of countries observed exporting the commodity
// globally that year, which the scorer uses as the diversity
// denominator.
type Snapshot struct {
	Imports types.PartnerValueMap
	Exports types.PartnerValueMap

	// GlobalExporterCount is computed over the FULL record set, not
	// the reporter-filtered one: it counts distinct valid reporters
	// with at least one positive export record.
	GlobalExporterCount int
}

// BuildSnapshot derives a Snapshot from an all-reporters, both-flows
// record set. The per-direction maps see only the given reporter's
// records; the exporter count sees everything.
func BuildSnapshot(records []types.TradeRecord, reporter string) Snapshot {
	return Snapshot{
		Imports:             AggregatePartners(records, types.FlowImport, reporter),
		Exports:             AggregatePartners(records, types.FlowExport, reporter),
		GlobalExporterCount: countExporters(records),
	}
}

func countExporters(records []types.TradeRecord) int {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.FlowCode != types.FlowExport {
			continue
		}
		if !IsValidPartner(rec.ReporterDesc) {
			continue
		}
		if !rec.PrimaryValue.Valid || rec.PrimaryValue.Amount <= 0 {
			continue
		}
		seen[rec.ReporterDesc] = struct{}{}
	}
	return len(seen)
}

// AggregateExporters sums export values per reporter, preserving the
// order of first appearance in the record set so downstream ranking
// can tie-break deterministically by fetch order. Reporter
// descriptions go through the same validity filter as partners.
func AggregateExporters(records []types.TradeRecord) []types.ExporterCandidate {
	index := make(map[string]int)
	var candidates []types.ExporterCandidate
	for _, rec := range records {
		if rec.FlowCode != types.FlowExport {
			continue
		}
		if !IsValidPartner(rec.ReporterDesc) {
			continue
		}
		if !rec.PrimaryValue.Valid || rec.PrimaryValue.Amount <= 0 {
			continue
		}
		code := string(rec.ReporterCode)
		if i, ok := index[code]; ok {
			candidates[i].Value += rec.PrimaryValue.Amount
			continue
		}
		index[code] = len(candidates)
		candidates = append(candidates, types.ExporterCandidate{
			CountryCode: code,
			Value:       rec.PrimaryValue.Amount,
			CountryName: rec.ReporterDesc,
		})
	}
	return candidates
}
