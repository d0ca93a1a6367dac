// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package comtrade implements the UN Comtrade trade data client.
//
// The client degrades silently: a fetch either yields the full record
// set for a query or an empty slice. Rate limiting is retried with
// linear backoff; transport failures and unexpected statuses are
// logged and swallowed so an upstream hiccup never takes down an
// interactive session.
package comtrade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pdiddy/resilience-engine/internal/httputil"
	"github.com/pdiddy/resilience-engine/pkg/types"
)

const (
	// defaultBaseURL is the annual HS-classified goods endpoint.
	defaultBaseURL   = "https://comtradeapi.un.org/data/v1/get/C/A/HS"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "resilience-engine/0.1"

	// subscriptionHeader carries the API credential.
	subscriptionHeader = "Ocp-Apim-Subscription-Key"
)

// Query holds the parameters of one trade data request. An empty
// Reporter means "all reporters"; an empty Flow means both directions.
type Query struct {
	Reporter  string
	Period    int
	Flow      types.Flow
	Commodity string
}

// Values renders the query as Comtrade request parameters. Frequency
// is fixed to annual, breakdown to classic, and descriptions are
// always requested since aggregation keys on them.
func (q Query) Values() url.Values {
	return url.Values{
		"reporterCode":  {q.Reporter},
		"period":        {strconv.Itoa(q.Period)},
		"flowCode":      {string(q.Flow)},
		"cmdCode":       {q.Commodity},
		"freq":          {"A"},
		"breakdownMode": {"classic"},
		"includeDesc":   {"true"},
	}
}

// Client issues queries against the Comtrade API.
type Client struct {
	cfg    types.ClientConfig
	client *http.Client
	policy httputil.Policy
	warn   io.Writer
}

// NewClient builds a client from the config, applying defaults for
// any zero fields. Warnings about swallowed failures go to warn;
// nil means stderr.
func NewClient(cfg types.ClientConfig, warn io.Writer) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if warn == nil {
		warn = os.Stderr
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		policy: httputil.DefaultPolicy(),
		warn:   warn,
	}
}

// FetchRecords fetches the full record set for a query, or an empty
// slice on any failure. There are no partial results: rate limiting is
// retried up to the configured limit, anything else fails the call
// immediately, and both degradations are logged rather than surfaced.
func (c *Client) FetchRecords(ctx context.Context, q Query) []types.TradeRecord {
	records, err := c.fetch(ctx, q)
	if err != nil {
		fmt.Fprintf(c.warn, "warning: comtrade fetch (cmd %s, period %d): %v\n", q.Commodity, q.Period, err)
		return []types.TradeRecord{}
	}
	return records
}

func (c *Client) fetch(ctx context.Context, q Query) ([]types.TradeRecord, error) {
	reqURL := c.cfg.BaseURL + "?" + q.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set(subscriptionHeader, c.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.policy, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("comtrade request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("comtrade returned HTTP %d", resp.StatusCode)
	}

	var payload dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing comtrade response: %w", err)
	}
	if payload.Data == nil {
		return []types.TradeRecord{}, nil
	}
	return payload.Data, nil
}

// dataResponse is the Comtrade envelope: records live under "data".
type dataResponse struct {
	Data []types.TradeRecord `json:"data"`
}
