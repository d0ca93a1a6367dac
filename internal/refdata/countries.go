// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdiddy/resilience-engine/internal/comtrade"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

// Fetcher is the slice of the Comtrade client reference-data
// preparation needs.
type Fetcher interface {
	FetchRecords(ctx context.Context, q comtrade.Query) []types.TradeRecord
}

// FetchCountries probes the reference year's TOTAL imports across all
// reporters and derives the selectable country set from the partner
// columns. Options are sorted by name and labeled "Name (code)".
// Aggregate rows such as World are kept: the upstream partner table
// includes them and the control list has always shown them.
func FetchCountries(ctx context.Context, fetcher Fetcher, referenceYear int) []types.Option {
	records := fetcher.FetchRecords(ctx, comtrade.Query{
		Reporter:  "",
		Period:    referenceYear,
		Flow:      types.FlowImport,
		Commodity: "TOTAL",
	})

	names := make(map[string]string)
	for _, rec := range records {
		code := string(rec.PartnerCode)
		if code == "" || rec.PartnerDesc == "" {
			continue
		}
		names[code] = rec.PartnerDesc
	}

	options := make([]types.Option, 0, len(names))
	for code, name := range names {
		options = append(options, types.Option{
			Label: fmt.Sprintf("%s (%s)", name, code),
			Value: code,
		})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Label < options[j].Label
	})
	return options
}
