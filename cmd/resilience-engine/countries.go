// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resilience-engine/internal/refdata"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List selectable reporter countries",
	Long: `Countries derives the list of selectable countries from the partner
dimension of a world-level trade query, so the options match what the
trade data actually covers. With --save the list is also written to the
local reference database.`,
	RunE: runCountries,
}

func init() {
	countriesCmd.Flags().Bool("json", false, "emit options as JSON instead of a table")
	countriesCmd.Flags().Bool("save", false, "persist the list to the reference database")

	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	fetcher, err := newFetcher(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	refCfg := refDataConfig()
	options := refdata.FetchCountries(ctx, fetcher, refCfg.ReferenceYear)

	if save, _ := cmd.Flags().GetBool("save"); save {
		store, err := refdata.Open(refCfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.UpsertCountries(ctx, options); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d countries to the reference database\n", len(options))
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(options)
	}

	for _, opt := range options {
		fmt.Println(opt.Label)
	}
	return nil
}
