package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

// WeatherInput is the get_weather argument set
type WeatherInput struct {
	Location string `json:"location" description:"City name, ZIP code, or 'City,Country' format (e.g., 'London,UK')"`
}

// WeatherOutput is the reshaped current weather report
type WeatherOutput struct {
	Location    string `json:"location"`
	Country     string `json:"country"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	Status      string `json:"status"`
}

// WeatherTool retrieves current weather conditions for a location
type WeatherTool struct {
	client *Client
}

// NewWeatherTool creates the weather tool and registers it
func NewWeatherTool(client *Client, registry *tools.Registry) *WeatherTool {
	t := &WeatherTool{client: client}
	if registry == nil {
		return t
	}

	tool := mcp.NewTool("get_weather",
		mcp.WithDescription("Retrieve current weather conditions for any city or location. Example: get_weather('London') or get_weather('Paris,FR')."),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("City name, ZIP code, or 'City,Country' format (e.g., 'London,UK')"),
		),
	)

	registry.Register(tool, t.Handle)
	return t
}

// Handle adapts tool-call arguments onto Execute and wraps the outcome
// in a response envelope.
func (t *WeatherTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := req.RequireString("location")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	if strings.TrimSpace(location) == "" {
		return tools.Failure("location is required"), nil
	}

	out, err := t.Execute(ctx, &WeatherInput{Location: location})
	if err != nil {
		return tools.Failure(weatherError(location, err)), nil
	}
	return tools.Success(out), nil
}

// Execute fetches and reshapes the current weather for the input location
func (t *WeatherTool) Execute(ctx context.Context, input *WeatherInput) (*WeatherOutput, error) {
	log.Debugf(ctx, "WeatherTool executing for location %q", input.Location)

	if t.client == nil {
		return nil, fmt.Errorf("openweather client not initialized")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, fmt.Errorf("location is required")
	}

	weather, err := t.client.GetCurrentWeather(ctx, input.Location)
	if err != nil {
		log.Errorf(ctx, "WeatherTool failed: %v", err)
		return nil, err
	}

	description := ""
	if len(weather.Weather) > 0 {
		// cases.Caser carries state, build one per call
		description = cases.Title(language.English).String(weather.Weather[0].Description)
	}

	log.Debugf(ctx, "WeatherTool completed successfully for %s", weather.Name)
	return &WeatherOutput{
		Location:    weather.Name,
		Country:     weather.Sys.Country,
		Temperature: fmt.Sprintf("%v%s", weather.Main.Temp, tempSuffix(t.client.Units)),
		FeelsLike:   fmt.Sprintf("%v%s", weather.Main.FeelsLike, tempSuffix(t.client.Units)),
		Description: description,
		Humidity:    fmt.Sprintf("%d%%", weather.Main.Humidity),
		WindSpeed:   fmt.Sprintf("%v %s", weather.Wind.Speed, windSuffix(t.client.Units)),
		Status:      tools.StatusSuccess,
	}, nil
}

// weatherError maps client failures onto the user-facing messages
func weatherError(location string, err error) string {
	var urlErr *url.Error
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return "OpenWeather API key not configured. Please add OPENWEATHER_API_KEY to .env file"
	case errors.Is(err, ErrLocationNotFound):
		return fmt.Sprintf("Location '%s' not found", location)
	case errors.As(err, &urlErr):
		return fmt.Sprintf("Network error: %v", err)
	default:
		return fmt.Sprintf("Weather API error: %v", err)
	}
}

func tempSuffix(units string) string {
	switch units {
	case "imperial":
		return "°F"
	case "standard":
		return "K"
	default:
		return "°C"
	}
}

func windSuffix(units string) string {
	if units == "imperial" {
		return "mph"
	}
	return "m/s"
}
