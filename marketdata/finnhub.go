// Package marketdata fetches index quotes from the Finnhub REST API for the
// daily and weekly market summary tweets.
package marketdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Indexes tracked by the summary tweets, display name to Finnhub symbol
var Indexes = map[string]string{
	"S&P 500":   "^GSPC",
	"Dow Jones": "^DJI",
}

// Quote is one index snapshot with derived change fields
type Quote struct {
	Open          float64
	Close         float64
	Change        float64
	PercentChange float64
	Up            bool
}

// Client calls the Finnhub quote endpoint
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Finnhub client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://finnhub.io/api/v1/quote",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// quoteResponse mirrors Finnhub's quote payload
type quoteResponse struct {
	Open    *float64 `json:"o"`
	Current *float64 `json:"c"`
}

// Quote fetches the open/current prices for one symbol
func (c *Client) Quote(symbol string) (*Quote, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Quote: Finnhub API key is missing")
	}

	endpoint := fmt.Sprintf("%s?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)
	resp, err := c.http.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("Quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Quote %s: HTTP %d", symbol, resp.StatusCode)
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("Quote %s: decode: %w", symbol, err)
	}
	if payload.Open == nil || payload.Current == nil {
		return nil, fmt.Errorf("Quote %s: incomplete data", symbol)
	}

	open, current := *payload.Open, *payload.Current
	q := &Quote{
		Open:   open,
		Close:  current,
		Change: current - open,
		Up:     current > open,
	}
	if open != 0 {
		q.PercentChange = (current - open) / open * 100
	}
	return q, nil
}

// IndexQuotes fetches every tracked index. One failing index is skipped with
// its error collected; the caller decides whether a partial map is usable.
func (c *Client) IndexQuotes() (map[string]*Quote, error) {
	quotes := make(map[string]*Quote, len(Indexes))
	var firstErr error

	for name, symbol := range Indexes {
		q, err := c.Quote(symbol)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		quotes[name] = q
	}

	if len(quotes) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return quotes, nil
}
