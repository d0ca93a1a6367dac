// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for linear backoff on
// HTTP 429 responses. The wait before retry n (1-based) is
// n * RetryBaseDelay: 5 s, 10 s, 15 s. Tests override this to avoid
// real sleeps.
var RetryBaseDelay = 5 * time.Second

const defaultMaxRetries = 3

// Action tells DoWithRetry what to do with a response status.
type Action int

const (
	// Accept returns the response to the caller.
	Accept Action = iota
	// Retry backs off and reissues the request.
	Retry
	// Fail returns the response without retrying; the caller decides
	// how to degrade.
	Fail
)

// Policy maps an HTTP status code to an Action. Statuses absent from
// the table use DefaultAction. Keeping the retry decision in a table
// rather than inline conditionals lets new status handling be added
// without touching the request loop.
type Policy struct {
	Statuses      map[int]Action
	DefaultAction Action
}

// DefaultPolicy reflects the upstream API contract: 200 is definitive,
// 429 is the only retryable signal, everything else fails immediately.
func DefaultPolicy() Policy {
	return Policy{
		Statuses: map[int]Action{
			http.StatusOK:              Accept,
			http.StatusTooManyRequests: Retry,
		},
		DefaultAction: Fail,
	}
}

// Decide returns the action for a status code.
func (p Policy) Decide(status int) Action {
	if action, ok := p.Statuses[status]; ok {
		return action
	}
	return p.DefaultAction
}

// DoWithRetry executes an HTTP request, consulting the policy on each
// response status. Retryable responses are retried up to maxRetries
// times with linear backoff: the wait before attempt n+1 is
// (n+1) * RetryBaseDelay. When maxRetries is 0 the default (3) is used.
//
// On each retry the previous body is drained and closed before
// sleeping. If the context is cancelled during a backoff wait the
// function returns ctx.Err(). After exhausting retries the last
// retryable response is returned so the caller can inspect it.
// Transport errors are returned immediately, never retried.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy Policy, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if policy.Decide(resp.StatusCode) != Retry {
			return resp, nil
		}

		// Exhausted retries: return the retryable response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(attempt+1) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
