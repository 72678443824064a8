package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

// Client fetches live USD-base rates from a rates API that returns
// open.er-api.com style JSON: {"base_code":"USD","rates":{"EUR":0.92,...}}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a rates API client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ratesResponse is the wire shape of the rates API
type ratesResponse struct {
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// Fetch performs one request for the latest rates. Only the supported
// currency set is kept; everything else in the response is ignored.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	url := fmt.Sprintf("%s/latest/%s", c.baseURL, currency.Base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("rates API returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode rates response: %w", err)
	}

	rates := make(currency.Rates, len(currency.Codes()))
	for _, code := range currency.Codes() {
		if rate, ok := body.Rates[string(code)]; ok && rate > 0 {
			rates[code] = rate
		}
	}
	if len(rates) == 0 {
		return Snapshot{}, fmt.Errorf("rates response contained no supported currencies")
	}

	return Snapshot{Base: currency.Base, Rates: rates, FetchedAt: time.Now()}, nil
}
