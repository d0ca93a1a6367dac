// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resilience-engine/internal/refdata"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare SECTOR [SECTOR...]",
	Short: "Build labeled commodity tables for sectors",
	Long: `Prepare reads data/<sector>.csv for each named sector, reduces its HS
codes to unique 6-digit codes, fetches each code's description from the
trade API, and writes data/<sector>_labels.csv plus the reference
database rows the selection controls read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	fetcher, err := newFetcher(cmd)
	if err != nil {
		return err
	}

	refCfg := refDataConfig()
	store, err := refdata.Open(refCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	for _, sector := range args {
		fmt.Printf("Preparing sector %s\n", sector)
		summary, err := refdata.PrepareSector(ctx, fetcher, store, refCfg, sector, os.Stdout)
		if err != nil {
			return fmt.Errorf("preparing sector %s: %w", sector, err)
		}
		fmt.Printf("Sector %s done: %d labeled, %d missing\n", sector, summary.Labeled, summary.Missing)
	}
	return nil
}
