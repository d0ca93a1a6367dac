// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/resilience-engine/internal/comtrade"
	"github.com/pdiddy/resilience-engine/internal/httputil"
	"github.com/pdiddy/resilience-engine/internal/secrets"
	"github.com/pdiddy/resilience-engine/internal/trade"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

// defaultCommodities is the critical-goods watchlist used when the
// config file does not provide one.
var defaultCommodities = []types.CommodityRef{
	{Code: "8541", Label: "Semiconductors"},
	{Code: "3002", Label: "Vaccines"},
	{Code: "8507", Label: "Lithium Batteries"},
	{Code: "2805", Label: "Rare-earth metals"},
	{Code: "0407", Label: "Bird's eggs"},
}

// clientConfig assembles the trade client configuration from flags,
// config file, and loaded secrets. The subscription key is a hard
// precondition: without one the upstream rejects everything, so fail
// fast instead of degrading every query to "no data".
func clientConfig(cmd *cobra.Command) (types.ClientConfig, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secretDefault(secrets.ComtradeKey, apiKey)
	if apiKey == "" {
		return types.ClientConfig{}, fmt.Errorf("comtrade subscription key required: pass --api-key or create .secrets/%s", secrets.ComtradeKey)
	}

	cfg := types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout: viper.GetDuration("client.timeout"),
		},
		BaseURL:    viper.GetString("client.base_url"),
		APIKey:     apiKey,
		MaxRetries: viper.GetInt("client.max_retries"),
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if d := viper.GetDuration("client.retry_base_delay"); d > 0 {
		httputil.RetryBaseDelay = d
	}
	return cfg, nil
}

// newService wires client, caches, and config into a trade service.
func newService(cmd *cobra.Command) (*trade.Service, error) {
	cliCfg, err := clientConfig(cmd)
	if err != nil {
		return nil, err
	}
	client := comtrade.NewClient(cliCfg, os.Stderr)
	return trade.NewService(client, types.CacheConfig{
		MaxEntries: viper.GetInt("cache.max_entries"),
	})
}

// newFetcher builds a bare client for commands that do not need the
// aggregation caches.
func newFetcher(cmd *cobra.Command) (*comtrade.Client, error) {
	cliCfg, err := clientConfig(cmd)
	if err != nil {
		return nil, err
	}
	return comtrade.NewClient(cliCfg, os.Stderr), nil
}

// scanCommodities returns the configured watchlist, falling back to
// the built-in critical goods.
func scanCommodities() []types.CommodityRef {
	var refs []types.CommodityRef
	if err := viper.UnmarshalKey("scan.commodities", &refs); err == nil && len(refs) > 0 {
		return refs
	}
	return defaultCommodities
}

// refDataConfig assembles the reference-data configuration.
func refDataConfig() types.RefDataConfig {
	cfg := types.RefDataConfig{
		DataDir:       viper.GetString("refdata.data_dir"),
		ReferenceYear: viper.GetInt("refdata.reference_year"),
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ReferenceYear == 0 {
		cfg.ReferenceYear = 2022
	}
	return cfg
}

// requireSelection validates the caller-supplied query preconditions.
func requireSelection(country, commodity string, year int) error {
	if country == "" {
		return fmt.Errorf("country code required: pass --country")
	}
	if commodity == "" {
		return fmt.Errorf("commodity code required: pass --commodity")
	}
	if year <= 0 {
		return fmt.Errorf("year required: pass --year")
	}
	return nil
}
