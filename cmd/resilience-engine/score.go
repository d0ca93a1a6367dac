// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resilience-engine/internal/scoring"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute supply chain risk metrics for one commodity",
	Long: `Score fetches a country's import and export partners for one HS
commodity and year, then derives the concentration (HHI), diversity,
dependency (IDI), and composite SCRI metrics.

A commodity the country reported no imports for is "no data", not a zero
score.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("country", "", "reporter country code (e.g. 826)")
	scoreCmd.Flags().String("commodity", "", "HS commodity code (e.g. 8541)")
	scoreCmd.Flags().Int("year", 0, "reporting year (e.g. 2022)")
	scoreCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	country, _ := cmd.Flags().GetString("country")
	commodity, _ := cmd.Flags().GetString("commodity")
	year, _ := cmd.Flags().GetInt("year")
	format, _ := cmd.Flags().GetString("format")

	if err := requireSelection(country, commodity, year); err != nil {
		return err
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	snap := svc.Snapshot(context.Background(), country, commodity, year)
	result, err := scoring.Score(snap.Imports, snap.Exports, snap.GlobalExporterCount)
	if err != nil {
		return fmt.Errorf("country %s, commodity %s, year %d: %w", country, commodity, year, err)
	}

	return writeScore(result, format)
}

func writeScore(result types.ScoreResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(result)
	case "table", "":
		printScoreTable(result)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func printScoreTable(result types.ScoreResult) {
	fmt.Printf("Herfindahl-Hirschman Index (HHI): %.4f\n", result.HHI)
	fmt.Printf("Supplier Diversity Score:         %.4f\n", result.DiversityScore)
	fmt.Printf("Import Dependency Index (IDI):    %.4f\n", result.IDI)
	fmt.Printf("Composite SCRI:                   %.4f\n", result.SCRI)
	fmt.Printf("Total Imports (USD):              %.0f\n", result.TotalImports)
	fmt.Printf("Total Exports (USD):              %.0f\n", result.TotalExports)
	fmt.Printf("Import Partners:                  %d\n", result.ImportPartnerCount)
	fmt.Printf("Risk Level:                       %s\n", result.Level())
}
