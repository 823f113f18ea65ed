// Package worldtime resolves city names to IANA timezones and queries
// WorldTimeAPI for the current time in that zone, exposed as the
// get_timezone_info tool.
package worldtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"toolbelt-mcp/tools"
)

const (
	// DefaultBaseURL is the WorldTimeAPI endpoint
	DefaultBaseURL = "https://worldtimeapi.org/api"
)

// Client handles WorldTimeAPI requests
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new WorldTimeAPI client and initializes tools
func NewClient(baseURL string, registry *tools.Registry) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	// Initialize tools
	c.initTools(registry)

	return c
}

// initTools registers all WorldTime tools
func (c *Client) initTools(registry *tools.Registry) {
	if registry == nil {
		return
	}

	NewTimezoneTool(c, registry)
}

// TimezoneInfo represents a WorldTimeAPI timezone response
type TimezoneInfo struct {
	Timezone     string `json:"timezone"`
	Datetime     string `json:"datetime"`
	UTCOffset    string `json:"utc_offset"`
	Abbreviation string `json:"abbreviation"`
	DayOfWeek    int    `json:"day_of_week"`
	DayOfYear    int    `json:"day_of_year"`
	WeekNumber   int    `json:"week_number"`
	Unixtime     int64  `json:"unixtime"`
	DST          bool   `json:"dst"`
}

// GetTimezone returns the current time details for an IANA timezone identifier
func (c *Client) GetTimezone(ctx context.Context, timezone string) (*TimezoneInfo, error) {
	endpoint := fmt.Sprintf("%s/timezone/%s", c.BaseURL, timezone)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get timezone info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var info TimezoneInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &info, nil
}
