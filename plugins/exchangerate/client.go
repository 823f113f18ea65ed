// Package exchangerate wraps the ExchangeRate-API v6 latest-rates endpoint
// and exposes it as the convert_currency tool.
package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

const (
	// DefaultBaseURL is the ExchangeRate-API v6 endpoint
	DefaultBaseURL = "https://v6.exchangerate-api.com/v6"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("exchangerate API key not configured")

	// ErrTargetCurrencyNotFound is returned when the target code is absent
	// from the returned rate table
	ErrTargetCurrencyNotFound = errors.New("target currency not found in exchange rates")
)

// APIError is a semantic failure reported in the response body, such as
// unsupported-code or invalid-key.
type APIError struct {
	Type string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return "exchangerate API error"
	}
	return fmt.Sprintf("exchangerate API error: %s", e.Type)
}

// Client handles ExchangeRate-API requests
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new ExchangeRate-API client and initializes tools
func NewClient(apiKey, baseURL string, registry *tools.Registry) *Client {
	if apiKey == "" {
		log.Warn(context.Background(), "ExchangeRate API key is empty, convert_currency will not work properly")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}

	// Initialize tools
	c.initTools(registry)

	return c
}

// initTools registers all ExchangeRate tools
func (c *Client) initTools(registry *tools.Registry) {
	if registry == nil {
		return
	}

	NewCurrencyTool(c, registry)
}

// LatestRates represents an ExchangeRate-API latest rates response
type LatestRates struct {
	Result            string             `json:"result"`
	ErrorType         string             `json:"error-type"`
	TimeLastUpdateUTC string             `json:"time_last_update_utc"`
	BaseCode          string             `json:"base_code"`
	ConversionRates   map[string]float64 `json:"conversion_rates"`
}

// GetLatestRates returns the full rate table for a base currency
func (c *Client) GetLatestRates(ctx context.Context, baseCurrency string) (*LatestRates, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/%s/latest/%s", c.BaseURL, c.APIKey, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}
	defer resp.Body.Close()

	var rates LatestRates
	decodeErr := json.NewDecoder(resp.Body).Decode(&rates)

	// The API reports semantic failures in the body, on error statuses too
	if decodeErr == nil && rates.Result == "error" {
		return nil, &APIError{Type: rates.ErrorType}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	return &rates, nil
}
