// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trade

import (
	"context"

	"github.com/pdiddy/resilience-engine/internal/cache"
	"github.com/pdiddy/resilience-engine/internal/comtrade"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

// Fetcher is the slice of the Comtrade client the service needs.
// Tests substitute a stub.
type Fetcher interface {
	FetchRecords(ctx context.Context, q comtrade.Query) []types.TradeRecord
}

// Service runs the fetch-and-aggregate pipeline behind the query
// cache. Within one process lifetime, identical queries hit the
// upstream API at most once, including queries that previously came
// back empty.
type Service struct {
	client    Fetcher
	perFlow   *cache.Cache[types.PartnerValueMap]
	combined  *cache.Cache[Snapshot]
	exporters *cache.Cache[[]types.ExporterCandidate]
}

// NewService wires a fetcher to fresh caches.
func NewService(client Fetcher, cfg types.CacheConfig) (*Service, error) {
	perFlow, err := cache.New[types.PartnerValueMap](cfg)
	if err != nil {
		return nil, err
	}
	combined, err := cache.New[Snapshot](cfg)
	if err != nil {
		return nil, err
	}
	exporters, err := cache.New[[]types.ExporterCandidate](cfg)
	if err != nil {
		return nil, err
	}
	return &Service{client: client, perFlow: perFlow, combined: combined, exporters: exporters}, nil
}

// Partners returns the partner-value map for one country, flow,
// commodity and year. Results are memoized; the returned map is a
// copy, so callers may mutate it freely.
func (s *Service) Partners(ctx context.Context, country string, flow types.Flow, commodity string, year int) types.PartnerValueMap {
	key := cache.Key{Country: country, Year: year, Commodity: commodity, Flow: flow}
	result := s.perFlow.GetOrCompute(key, func() types.PartnerValueMap {
		records := s.client.FetchRecords(ctx, comtrade.Query{
			Reporter:  country,
			Period:    year,
			Flow:      flow,
			Commodity: commodity,
		})
		return AggregatePartners(records, flow, "")
	})
	return result.Clone()
}

// Snapshot returns both direction maps plus the global exporter count
// for one country/commodity/year. It issues a single all-reporters,
// both-flows fetch: the per-direction maps are filtered to the country
// while the exporter count covers the full record set.
func (s *Service) Snapshot(ctx context.Context, country, commodity string, year int) Snapshot {
	key := cache.Key{Country: country, Year: year, Commodity: commodity, Flow: types.FlowAll}
	result := s.combined.GetOrCompute(key, func() Snapshot {
		records := s.client.FetchRecords(ctx, comtrade.Query{
			Reporter:  "",
			Period:    year,
			Flow:      types.FlowAll,
			Commodity: commodity,
		})
		return BuildSnapshot(records, country)
	})
	return Snapshot{
		Imports:             result.Imports.Clone(),
		Exports:             result.Exports.Clone(),
		GlobalExporterCount: result.GlobalExporterCount,
	}
}

// ExporterTotals returns cumulative export value per reporter for one
// commodity and year across all reporters, in first-appearance order.
// The returned slice is a copy.
func (s *Service) ExporterTotals(ctx context.Context, commodity string, year int) []types.ExporterCandidate {
	key := cache.Key{Country: "", Year: year, Commodity: commodity, Flow: types.FlowExport}
	result := s.exporters.GetOrCompute(key, func() []types.ExporterCandidate {
		records := s.client.FetchRecords(ctx, comtrade.Query{
			Reporter:  "",
			Period:    year,
			Flow:      types.FlowExport,
			Commodity: commodity,
		})
		return AggregateExporters(records)
	})
	out := make([]types.ExporterCandidate, len(result))
	copy(out, result)
	return out
}
