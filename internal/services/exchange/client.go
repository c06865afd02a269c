// Package exchange supplies currency conversion rates, backed by a live
// exchange-rate HTTP API with static fallback tables.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds the single outbound rate fetch. There is no retry:
// one attempt, then the caller falls back to the static tables.
const DefaultTimeout = 10 * time.Second

// RateFetcher fetches live conversion rates for a base currency. It is an
// interface so handlers and services can be tested without network access.
type RateFetcher interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// APIClient fetches rates from an exchange-rate endpoint that answers
// GET {baseURL}/{base} with a JSON body containing a "rates" object.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a rate client with an explicit request timeout.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Result string             `json:"result"`
	Base   string             `json:"base_code"`
	Rates  map[string]float64 `json:"rates"`
}

// FetchRates issues a single GET for the base currency's rate table.
func (c *APIClient) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate API response has no rates for %s", base)
	}

	return body.Rates, nil
}
