// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resilience-engine/internal/comtrade"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

// stubFetcher serves canned records keyed by commodity code.
type stubFetcher struct {
	byCommodity map[string][]types.TradeRecord
	queries     []comtrade.Query
}

func (f *stubFetcher) FetchRecords(_ context.Context, q comtrade.Query) []types.TradeRecord {
	f.queries = append(f.queries, q)
	return f.byCommodity[q.Commodity]
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.RefDataConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_CountriesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.UpsertCountries(ctx, []types.Option{
		{Label: "United Kingdom (826)", Value: "826"},
		{Label: "Germany (276)", Value: "276"},
	})
	require.NoError(t, err)

	// Upsert replaces, never duplicates.
	err = store.UpsertCountries(ctx, []types.Option{
		{Label: "Germany (276)", Value: "276"},
	})
	require.NoError(t, err)

	got, err := store.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Option{
		{Label: "Germany (276)", Value: "276"},
		{Label: "United Kingdom (826)", Value: "826"},
	}, got)
}

func TestStore_CommoditiesBySector(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.UpsertCommodities(ctx, "semiconductors", []types.Option{
		{Label: "Diodes and transistors", Value: "854110"},
		{Label: "Photovoltaic cells", Value: "854140"},
	})
	require.NoError(t, err)
	err = store.UpsertCommodities(ctx, "vaccines", []types.Option{
		{Label: "Vaccines for human medicine", Value: "300220"},
	})
	require.NoError(t, err)

	semis, err := store.Commodities(ctx, "semiconductors")
	require.NoError(t, err)
	assert.Len(t, semis, 2)
	assert.Equal(t, "854110", semis[0].Value)

	vaccines, err := store.Commodities(ctx, "vaccines")
	require.NoError(t, err)
	assert.Len(t, vaccines, 1)
}

func TestFetchCountries_SortedOptions(t *testing.T) {
	f := &stubFetcher{byCommodity: map[string][]types.TradeRecord{
		"TOTAL": {
			{PartnerCode: "826", PartnerDesc: "United Kingdom"},
			{PartnerCode: "276", PartnerDesc: "Germany"},
			// Duplicate partner rows collapse.
			{PartnerCode: "276", PartnerDesc: "Germany"},
			// Rows without code or description are unusable.
			{PartnerCode: "", PartnerDesc: "Nowhere"},
			{PartnerCode: "999", PartnerDesc: ""},
		},
	}}

	got := FetchCountries(context.Background(), f, 2022)

	assert.Equal(t, []types.Option{
		{Label: "Germany (276)", Value: "276"},
		{Label: "United Kingdom (826)", Value: "826"},
	}, got)

	require.Len(t, f.queries, 1)
	assert.Equal(t, "TOTAL", f.queries[0].Commodity)
	assert.Equal(t, types.FlowImport, f.queries[0].Flow)
	assert.Equal(t, 2022, f.queries[0].Period)
}

func TestReadSectorCodes_TruncatesAndDedupes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "semiconductors.csv")
	content := "Product,8- or 10-Digit HS Code\n" +
		"Diode,85411000\n" +
		"Transistor,8541210050\n" +
		"Diode again,85411090\n" + // same 6-digit prefix as the first
		"Bad row,not-a-code\n" +
		"Cell,854140\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	codes, err := ReadSectorCodes(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"854110", "854121", "854140"}, codes)
}

func TestReadSectorCodes_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	_, err := ReadSectorCodes(path)
	assert.Error(t, err)
}

func TestPrepareSector_WritesLabelsAndStore(t *testing.T) {
	dir := t.TempDir()
	sectorCSV := "Product,8- or 10-Digit HS Code\nDiode,85411000\nCell,85414000\nGhost,99999900\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "semiconductors.csv"), []byte(sectorCSV), 0o644))

	f := &stubFetcher{byCommodity: map[string][]types.TradeRecord{
		"854110": {{CmdCode: "854110", CmdDesc: "Diodes and transistors"}},
		"854140": {{CmdCode: "854140", CmdDesc: "Photovoltaic cells"}},
		// 999999 returns nothing: counted missing.
	}}

	cfg := types.RefDataConfig{DataDir: dir, ReferenceYear: 2022}
	store, err := Open(cfg)
	require.NoError(t, err)
	defer store.Close()

	var out bytes.Buffer
	summary, err := PrepareSector(context.Background(), f, store, cfg, "semiconductors", &out)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Labeled)
	assert.Equal(t, 1, summary.Missing)
	assert.Contains(t, out.String(), "missing 999999")

	// The labels CSV mirrors the dashboard dropdown format.
	labelFile, err := os.Open(filepath.Join(dir, "semiconductors_labels.csv"))
	require.NoError(t, err)
	defer labelFile.Close()
	rows, err := csv.NewReader(labelFile).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"label", "value"},
		{"Diodes and transistors", "854110"},
		{"Photovoltaic cells", "854140"},
	}, rows)

	stored, err := store.Commodities(context.Background(), "semiconductors")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
