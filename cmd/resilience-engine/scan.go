// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resilience-engine/internal/scoring"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rank the critical-goods watchlist by vulnerability",
	Long: `Scan scores every commodity on the critical-goods watchlist for one
country and year, ranks them by composite SCRI, and highlights the most
vulnerable goods. Commodities the country reported no imports for are
skipped rather than scored as zero.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("country", "", "reporter country code (e.g. 826)")
	scanCmd.Flags().Int("year", 0, "reporting year (e.g. 2022)")
	scanCmd.Flags().Int("top", 0, "how many highest-risk goods to highlight (default 3)")
	scanCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(scanCmd)
}

// scanEntry is one scored commodity in the ranking.
type scanEntry struct {
	Label  string            `json:"label" yaml:"label"`
	Code   string            `json:"code" yaml:"code"`
	Result types.ScoreResult `json:"result" yaml:"result"`
}

func runScan(cmd *cobra.Command, args []string) error {
	country, _ := cmd.Flags().GetString("country")
	year, _ := cmd.Flags().GetInt("year")
	top, _ := cmd.Flags().GetInt("top")
	format, _ := cmd.Flags().GetString("format")

	if country == "" {
		return fmt.Errorf("country code required: pass --country")
	}
	if year <= 0 {
		return fmt.Errorf("year required: pass --year")
	}
	if top <= 0 {
		top = viper.GetInt("scan.top")
	}
	if top <= 0 {
		top = 3
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	var entries []scanEntry
	for _, ref := range scanCommodities() {
		snap := svc.Snapshot(context.Background(), country, ref.Code, year)
		result, err := scoring.Score(snap.Imports, snap.Exports, snap.GlobalExporterCount)
		if errors.Is(err, scoring.ErrNoImportData) {
			fmt.Fprintf(os.Stderr, "skipping %s (%s): no import data\n", ref.Label, ref.Code)
			continue
		}
		if err != nil {
			return err
		}
		entries = append(entries, scanEntry{Label: ref.Label, Code: ref.Code, Result: result})
	}

	if len(entries) == 0 {
		fmt.Println("No data available to calculate vulnerabilities.")
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Result.SCRI > entries[j].Result.SCRI
	})

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(entries)
	case "table", "":
		printScanTable(entries, top)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func printScanTable(entries []scanEntry, top int) {
	if top > len(entries) {
		top = len(entries)
	}

	fmt.Printf("Top %d vulnerable critical goods (by SCRI):\n", top)
	for _, e := range entries[:top] {
		fmt.Printf("  %s (%s): SCRI = %.4f [%s]\n", e.Label, e.Code, e.Result.SCRI, e.Result.Level())
	}

	fmt.Printf("\n%-24s  %-6s  %-8s  %-8s  %-8s  %-8s  %s\n",
		"Commodity", "Code", "SCRI", "HHI", "Divers.", "IDI", "Level")
	fmt.Println(strings.Repeat("-", 80))
	for _, e := range entries {
		fmt.Printf("%-24s  %-6s  %-8.4f  %-8.4f  %-8.4f  %-8.4f  %s\n",
			e.Label, e.Code, e.Result.SCRI, e.Result.HHI,
			e.Result.DiversityScore, e.Result.IDI, e.Result.Level())
	}
}
