package worldtime

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

// ErrCityNotFound is returned for cities outside the supported table
var ErrCityNotFound = errors.New("city not found in database")

// TimezoneInput is the get_timezone_info argument set
type TimezoneInput struct {
	City string `json:"city" description:"City name (e.g., 'London', 'New York', 'Tokyo')"`
}

// TimezoneOutput is the reshaped timezone report
type TimezoneOutput struct {
	City        string `json:"city"`
	Timezone    string `json:"timezone"`
	CurrentTime string `json:"current_time"`
	UTCOffset   string `json:"utc_offset"`
	DayOfWeek   string `json:"day_of_week"`
	DayOfYear   int    `json:"day_of_year"`
	WeekNumber  int    `json:"week_number"`
	Status      string `json:"status"`
}

// TimezoneTool reports the current time and timezone details for a city
type TimezoneTool struct {
	client *Client
}

// NewTimezoneTool creates the timezone tool and registers it
func NewTimezoneTool(client *Client, registry *tools.Registry) *TimezoneTool {
	t := &TimezoneTool{client: client}
	if registry == nil {
		return t
	}

	tool := mcp.NewTool("get_timezone_info",
		mcp.WithDescription("Get current time and timezone information for a given city. Example: get_timezone_info('Tokyo')."),
		mcp.WithString("city",
			mcp.Required(),
			mcp.Description("City name (e.g., 'London', 'New York', 'Tokyo')"),
		),
	)

	registry.Register(tool, t.Handle)
	return t
}

func (t *TimezoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	city, err := req.RequireString("city")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	if strings.TrimSpace(city) == "" {
		return tools.Failure("city is required"), nil
	}

	out, err := t.Execute(ctx, &TimezoneInput{City: city})
	if err != nil {
		return tools.Failure(worldtimeError(city, err)), nil
	}
	return tools.Success(out), nil
}

// Execute resolves the city and fetches the current time in its timezone
func (t *TimezoneTool) Execute(ctx context.Context, input *TimezoneInput) (*TimezoneOutput, error) {
	log.Debugf(ctx, "TimezoneTool executing for city %q", input.City)

	if t.client == nil {
		return nil, fmt.Errorf("worldtime client not initialized")
	}

	timezone, ok := TimezoneForCity(input.City)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, input.City)
	}

	info, err := t.client.GetTimezone(ctx, timezone)
	if err != nil {
		log.Errorf(ctx, "TimezoneTool failed: %v", err)
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, info.Datetime)
	if err != nil {
		log.Errorf(ctx, "TimezoneTool failed: invalid datetime %q", info.Datetime)
		return nil, fmt.Errorf("invalid datetime %q in response", info.Datetime)
	}

	log.Debugf(ctx, "TimezoneTool completed successfully for %s", timezone)
	return &TimezoneOutput{
		City:        cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(input.City))),
		Timezone:    info.Timezone,
		CurrentTime: parsed.Format("2006-01-02 15:04:05"),
		UTCOffset:   info.UTCOffset,
		DayOfWeek:   parsed.Weekday().String(),
		DayOfYear:   info.DayOfYear,
		WeekNumber:  info.WeekNumber,
		Status:      tools.StatusSuccess,
	}, nil
}

// worldtimeError maps client failures onto the user-facing messages
func worldtimeError(city string, err error) string {
	var urlErr *url.Error
	switch {
	case errors.Is(err, ErrCityNotFound):
		return fmt.Sprintf("City '%s' not found in database. Supported cities: %s",
			city, strings.Join(SupportedCities(), ", "))
	case errors.As(err, &urlErr):
		return fmt.Sprintf("Network error: %v", err)
	default:
		return fmt.Sprintf("Time API error: %v", err)
	}
}
