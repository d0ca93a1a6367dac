package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "resilience-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the trade data client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Comtrade data endpoint. Tests substitute an
	// httptest server.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the Comtrade subscription key, sent as the
	// Ocp-Apim-Subscription-Key header. Held in memory only.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited
	// responses (default 3). Other failures are never retried.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the query cache.
type CacheConfig struct {
	// MaxEntries bounds the cache with LRU eviction. Zero or negative
	// means unbounded, the original single-session behavior.
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// CommodityRef names one critical commodity tracked by the scan.
type CommodityRef struct {
	// Code is the HS commodity code (e.g. "8541").
	Code string `json:"code" yaml:"code"`

	// Label is the display name (e.g. "Semiconductors").
	Label string `json:"label" yaml:"label"`
}

// ScanConfig holds settings for the vulnerability scan.
type ScanConfig struct {
	// Commodities is the critical-goods watchlist scored by the scan.
	Commodities []CommodityRef `json:"commodities" yaml:"commodities"`

	// Top is how many highest-risk commodities to highlight (default 3).
	Top int `json:"top" yaml:"top"`
}

// RefDataConfig holds settings for the reference-data store.
type RefDataConfig struct {
	// DataDir is the directory holding sector CSV files and the
	// reference database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ReferenceYear is the period probed when enumerating countries
	// and commodity descriptions (default 2022).
	ReferenceYear int `json:"reference_year" yaml:"reference_year"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	Client  ClientConfig  `json:"client" yaml:"client"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	RefData RefDataConfig `json:"refdata" yaml:"refdata"`
}
