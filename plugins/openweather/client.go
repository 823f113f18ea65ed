// Package openweather wraps the OpenWeatherMap current weather API and
// exposes it as the get_weather tool.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

const (
	// DefaultBaseURL is the OpenWeatherMap API endpoint
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultUnits controls the measurement system of upstream responses
	DefaultUnits = "metric"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("openweather API key not configured")

	// ErrLocationNotFound is returned when the API reports an unknown location
	ErrLocationNotFound = errors.New("location not found")
)

// Client handles OpenWeatherMap API requests
type Client struct {
	APIKey     string
	BaseURL    string
	Units      string
	HTTPClient *http.Client
}

// NewClient creates a new OpenWeatherMap client and initializes tools
func NewClient(apiKey, baseURL, units string, registry *tools.Registry) *Client {
	if apiKey == "" {
		log.Warn(context.Background(), "OpenWeather API key is empty, get_weather will not work properly")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if units == "" {
		units = DefaultUnits
	}

	c := &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Units:      units,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}

	// Initialize tools
	c.initTools(registry)

	return c
}

// initTools registers all OpenWeather tools
func (c *Client) initTools(registry *tools.Registry) {
	if registry == nil {
		return
	}

	NewWeatherTool(c, registry)
}

// WeatherCondition represents a single weather condition entry
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainMetrics holds the temperature and atmospheric readings
type MainMetrics struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// WindInfo holds the wind readings
type WindInfo struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// SysInfo holds country and sunrise/sunset metadata
type SysInfo struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentWeather represents an OpenWeatherMap current weather response
type CurrentWeather struct {
	Name    string             `json:"name"`
	Weather []WeatherCondition `json:"weather"`
	Main    MainMetrics        `json:"main"`
	Wind    WindInfo           `json:"wind"`
	Sys     SysInfo            `json:"sys"`
}

// GetCurrentWeather returns current conditions for a free-form location query
func (c *Client) GetCurrentWeather(ctx context.Context, location string) (*CurrentWeather, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.APIKey)
	params.Set("units", c.Units)

	endpoint := fmt.Sprintf("%s/weather?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get current weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var weather CurrentWeather
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &weather, nil
}

// apiError extracts the upstream error message when the body carries one
func apiError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, payload.Message)
	}
	return fmt.Errorf("API request failed with status %d", resp.StatusCode)
}
