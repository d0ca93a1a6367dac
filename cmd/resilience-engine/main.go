// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the resilience-engine CLI.
//
// The engine computes a composite Supply Chain Resilience Index (SCRI)
// for a country/commodity/year from UN Comtrade trade statistics. Each
// operation is a subcommand: score, scan, recommend, countries, and
// prepare. A dashboard front end composes the same operations through
// their structured (JSON/YAML) output.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/resilience-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the resilience-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "resilience-engine",
	Short: "Supply chain resilience metrics from trade statistics",
	Long: `resilience-engine turns UN Comtrade trade records into supply chain risk
metrics: import concentration (HHI), supplier diversity, import dependency
(IDI), and the composite SCRI.

Each operation is a subcommand: score one commodity, scan a critical-goods
watchlist, recommend alternative exporters, list selectable countries, or
prepare sector commodity tables. Results within one run are memoized, so
repeated queries never hit the rate-limited upstream API twice.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./resilience-engine.yaml or ~/.config/resilience-engine/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "Comtrade subscription key (default: .secrets/comtrade-subscription-key)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("resilience-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "resilience-engine"))
		}
	}

	viper.SetEnvPrefix("RESILIENCE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
