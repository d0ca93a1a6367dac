// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the resilience engine.
package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flow is a trade direction code as used by the Comtrade API.
type Flow string

const (
	// FlowImport selects import records.
	FlowImport Flow = "M"
	// FlowExport selects export records.
	FlowExport Flow = "X"
	// FlowAll selects both directions (empty flowCode parameter).
	FlowAll Flow = ""
)

// Code is a Comtrade identifier field. The API is inconsistent about
// whether codes (reporterCode, partnerCode, period) arrive as JSON
// numbers or strings, so Code accepts both and normalizes to a string.
type Code string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = ""
		return nil
	}
	if len(trimmed) >= 2 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	// Integer codes like 826 must not render as "826.000000".
	if i, err := n.Int64(); err == nil {
		*c = Code(strconv.FormatInt(i, 10))
		return nil
	}
	*c = Code(n.String())
	return nil
}

// Value is a trade value field. Comtrade mixes numbers and numeric
// strings, and occasionally ships garbage; an unparseable value marks
// the field invalid instead of failing the whole record batch.
type Value struct {
	Amount float64
	Valid  bool
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error
// for scalar input: anything that does not parse as a number simply
// leaves Valid false.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = Value{}
		return nil
	}
	if len(trimmed) >= 2 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*v = Value{}
			return nil
		}
		trimmed = strings.TrimSpace(s)
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*v = Value{}
		return nil
	}
	*v = Value{Amount: parsed, Valid: true}
	return nil
}

// TradeRecord is one raw bilateral trade observation from the upstream
// API. Records are transient: they are consumed into aggregates and
// never persisted.
type TradeRecord struct {
	ReporterCode Code   `json:"reporterCode"`
	ReporterDesc string `json:"reporterDesc"`
	PartnerCode  Code   `json:"partnerCode"`
	PartnerDesc  string `json:"partnerDesc"`
	FlowCode     Flow   `json:"flowCode"`
	CmdCode      Code   `json:"cmdCode"`
	CmdDesc      string `json:"cmdDesc"`
	PrimaryValue Value  `json:"primaryValue"`
	Period       Code   `json:"period"`
}

// PartnerValueMap maps a partner country name to its cumulative trade
// value in USD for one (country, commodity, year, flow) combination.
// The upstream aggregates by description, not code, and that keying is
// preserved here. Invariant: every stored value is strictly positive.
type PartnerValueMap map[string]float64

// Total returns the sum of all partner values.
func (m PartnerValueMap) Total() float64 {
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum
}

// Clone returns a copy of the map so cached aggregates cannot be
// mutated by callers.
func (m PartnerValueMap) Clone() PartnerValueMap {
	if m == nil {
		return nil
	}
	out := make(PartnerValueMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ScoreResult is an immutable snapshot of the risk metrics for one
// country/commodity/year. All ratio metrics are rounded to 4 decimals.
type ScoreResult struct {
	// TotalImports is the summed import value in USD.
	TotalImports float64 `json:"total_imports" yaml:"total_imports"`

	// TotalExports is the summed export value in USD.
	TotalExports float64 `json:"total_exports" yaml:"total_exports"`

	// HHI is the Herfindahl-Hirschman concentration index over import
	// shares, in [0,1]. 1.0 means a single supplier.
	HHI float64 `json:"hhi" yaml:"hhi"`

	// DiversityScore is the import partner count relative to the number
	// of countries exporting the commodity globally, capped at 1.0.
	DiversityScore float64 `json:"diversity_score" yaml:"diversity_score"`

	// IDI is the import dependency index: the fraction of import value
	// not offset by own exports, in [0,1].
	IDI float64 `json:"idi" yaml:"idi"`

	// SCRI is the composite score: (HHI + (1-DiversityScore) + IDI) / 3.
	SCRI float64 `json:"scri" yaml:"scri"`

	// ImportPartnerCount is the number of distinct import partners.
	ImportPartnerCount int `json:"import_partner_count" yaml:"import_partner_count"`
}

// RiskLevel buckets a composite score for policy reporting.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Level classifies the SCRI: above 0.5 high, above 0.2 medium,
// otherwise low. Thresholds match the dashboard's policy blocks.
func (r ScoreResult) Level() RiskLevel {
	switch {
	case r.SCRI > 0.5:
		return RiskHigh
	case r.SCRI > 0.2:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ExporterCandidate is a diversification suggestion: a country exporting
// the commodity globally, with its cumulative export value.
type ExporterCandidate struct {
	// CountryCode is the reporter code of the exporting country.
	CountryCode string `json:"country_code" yaml:"country_code"`

	// Value is the cumulative export value in USD across all partners.
	Value float64 `json:"value" yaml:"value"`

	// CountryName is the reporter description as returned by the API.
	CountryName string `json:"country_name" yaml:"country_name"`
}

// Option is a label/value pair consumed by selection controls: a
// country or commodity code with its display label.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}
