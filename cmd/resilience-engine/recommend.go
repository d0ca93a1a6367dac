// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resilience-engine/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest alternative exporters for diversification",
	Long: `Recommend finds the top global exporters of a commodity that the
country is not already importing from, as candidates for supplier
diversification. The country itself is excluded.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("country", "", "reporter country code (e.g. 826)")
	recommendCmd.Flags().String("commodity", "", "HS commodity code (e.g. 8541)")
	recommendCmd.Flags().Int("year", 0, "reporting year (e.g. 2022)")
	recommendCmd.Flags().Int("top", 3, "maximum number of suggestions")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	country, _ := cmd.Flags().GetString("country")
	commodity, _ := cmd.Flags().GetString("commodity")
	year, _ := cmd.Flags().GetInt("year")
	top, _ := cmd.Flags().GetInt("top")

	if err := requireSelection(country, commodity, year); err != nil {
		return err
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	snap := svc.Snapshot(ctx, country, commodity, year)
	exclude := recommend.PartnerSet(snap.Imports)

	candidates, err := recommend.TopExporters(ctx, svc, commodity, year, exclude, country, top)
	if errors.Is(err, recommend.ErrNoCandidates) {
		fmt.Println("No alternative exporters found.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Alternative exporters for HS %s (%d):\n", commodity, year)
	for i, c := range candidates {
		fmt.Printf("  %d. %s (%s): %.0f USD exported\n", i+1, c.CountryName, c.CountryCode, c.Value)
	}
	return nil
}
