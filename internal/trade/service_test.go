// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resilience-engine/internal/comtrade"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

// stubFetcher replays canned records and counts upstream calls.
type stubFetcher struct {
	records []types.TradeRecord
	calls   int
	queries []comtrade.Query
}

func (f *stubFetcher) FetchRecords(_ context.Context, q comtrade.Query) []types.TradeRecord {
	f.calls++
	f.queries = append(f.queries, q)
	return f.records
}

func newTestService(t *testing.T, f Fetcher) *Service {
	t.Helper()
	s, err := NewService(f, types.CacheConfig{})
	require.NoError(t, err)
	return s
}

func TestPartners_CachedAfterFirstFetch(t *testing.T) {
	f := &stubFetcher{records: []types.TradeRecord{
		rec("826", "United Kingdom", "Germany", types.FlowImport, 600, true),
		rec("826", "United Kingdom", "China", types.FlowImport, 400, true),
	}}
	s := newTestService(t, f)

	first := s.Partners(context.Background(), "826", types.FlowImport, "8541", 2022)
	second := s.Partners(context.Background(), "826", types.FlowImport, "8541", 2022)

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, types.PartnerValueMap{"Germany": 600, "China": 400}, first)

	// A different key triggers a fresh upstream call.
	s.Partners(context.Background(), "826", types.FlowExport, "8541", 2022)
	assert.Equal(t, 2, f.calls)
}

func TestPartners_EmptyResultCached(t *testing.T) {
	f := &stubFetcher{records: nil}
	s := newTestService(t, f)

	got := s.Partners(context.Background(), "826", types.FlowImport, "8541", 2022)
	assert.Empty(t, got)

	s.Partners(context.Background(), "826", types.FlowImport, "8541", 2022)
	assert.Equal(t, 1, f.calls, "a cached empty result must not refetch")
}

func TestPartners_ReturnedMapIsACopy(t *testing.T) {
	f := &stubFetcher{records: []types.TradeRecord{
		rec("826", "United Kingdom", "Germany", types.FlowImport, 600, true),
	}}
	s := newTestService(t, f)

	first := s.Partners(context.Background(), "826", types.FlowImport, "8541", 2022)
	first["Germany"] = 1

	second := s.Partners(context.Background(), "826", types.FlowImport, "8541", 2022)
	assert.Equal(t, 600.0, second["Germany"])
}

func TestSnapshot_SingleCombinedFetch(t *testing.T) {
	f := &stubFetcher{records: []types.TradeRecord{
		rec("826", "United Kingdom", "Germany", types.FlowImport, 600, true),
		rec("826", "United Kingdom", "Ireland", types.FlowExport, 150, true),
		rec("276", "Germany", "France", types.FlowExport, 900, true),
	}}
	s := newTestService(t, f)

	snap := s.Snapshot(context.Background(), "826", "8541", 2022)

	require.Equal(t, 1, f.calls)
	// The combined fetch goes out unscoped: all reporters, both flows.
	assert.Equal(t, "", f.queries[0].Reporter)
	assert.Equal(t, types.FlowAll, f.queries[0].Flow)
	assert.Equal(t, "8541", f.queries[0].Commodity)

	assert.Equal(t, types.PartnerValueMap{"Germany": 600}, snap.Imports)
	assert.Equal(t, types.PartnerValueMap{"Ireland": 150}, snap.Exports)
	assert.Equal(t, 2, snap.GlobalExporterCount)

	s.Snapshot(context.Background(), "826", "8541", 2022)
	assert.Equal(t, 1, f.calls)
}

func TestExporterTotals_CachedAndOrdered(t *testing.T) {
	f := &stubFetcher{records: []types.TradeRecord{
		rec("276", "Germany", "France", types.FlowExport, 500, true),
		rec("156", "China", "Japan", types.FlowExport, 800, true),
	}}
	s := newTestService(t, f)

	first := s.ExporterTotals(context.Background(), "8541", 2022)
	second := s.ExporterTotals(context.Background(), "8541", 2022)

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "Germany", first[0].CountryName)
	assert.Equal(t, "China", first[1].CountryName)
	assert.Equal(t, types.FlowExport, f.queries[0].Flow)
	assert.Equal(t, "", f.queries[0].Reporter)
}
