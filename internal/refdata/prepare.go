// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/resilience-engine/internal/comtrade"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

// hsCodeColumn is the header under which sector CSVs list their codes.
const hsCodeColumn = "8- or 10-Digit HS Code"

// PrepareSummary holds counts from one sector preparation run.
type PrepareSummary struct {
	Labeled int
	Missing int
}

// PrepareSector reads dataDir/<sector>.csv, reduces its HS codes to
// unique sorted 6-digit codes, fetches each code's description from
// the upstream API, writes dataDir/<sector>_labels.csv, and upserts
// the rows into the store. Codes the API has no description for are
// reported and skipped.
func PrepareSector(ctx context.Context, fetcher Fetcher, store *Store, cfg types.RefDataConfig, sector string, w io.Writer) (PrepareSummary, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	referenceYear := cfg.ReferenceYear
	if referenceYear == 0 {
		referenceYear = 2022
	}

	codes, err := ReadSectorCodes(filepath.Join(dataDir, sector+".csv"))
	if err != nil {
		return PrepareSummary{}, err
	}

	var summary PrepareSummary
	var options []types.Option
	for _, code := range codes {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		records := fetcher.FetchRecords(ctx, comtrade.Query{
			Reporter:  "",
			Period:    referenceYear,
			Flow:      types.FlowImport,
			Commodity: code,
		})
		if len(records) == 0 || records[0].CmdDesc == "" {
			fmt.Fprintf(w, "missing %s: no description available\n", code)
			summary.Missing++
			continue
		}

		fmt.Fprintf(w, "labeled %s: %s\n", code, records[0].CmdDesc)
		options = append(options, types.Option{Label: records[0].CmdDesc, Value: code})
		summary.Labeled++
	}

	if err := writeLabelsCSV(filepath.Join(dataDir, sector+"_labels.csv"), options); err != nil {
		return summary, err
	}
	if store != nil {
		if err := store.UpsertCommodities(ctx, sector, options); err != nil {
			return summary, err
		}
	}

	fmt.Fprintf(w, "\nlabeled: %d, missing: %d\n", summary.Labeled, summary.Missing)
	return summary, nil
}

// ReadSectorCodes reads the HS code column from a sector CSV and
// returns the unique 6-digit prefixes, sorted ascending. Rows whose
// code does not parse are skipped.
func ReadSectorCodes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sector file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading sector header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == hsCodeColumn {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("sector file %s has no %q column", path, hsCodeColumn)
	}

	seen := make(map[int]struct{})
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sector row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[col])
		if len(raw) > 6 {
			raw = raw[:6]
		}
		code, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		seen[code] = struct{}{}
	}

	codes := make([]int, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = strconv.Itoa(code)
	}
	return out, nil
}

func writeLabelsCSV(path string, options []types.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating labels file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"label", "value"}); err != nil {
		return fmt.Errorf("writing labels header: %w", err)
	}
	for _, opt := range options {
		if err := writer.Write([]string{opt.Label, opt.Value}); err != nil {
			return fmt.Errorf("writing label row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
