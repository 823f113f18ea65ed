package openweather

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbelt-mcp/tools"
)

func toolText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestWeatherTool_Execute(t *testing.T) {
	ts := mockWeatherServer()
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "metric", nil)
	tool := NewWeatherTool(client, nil)

	out, err := tool.Execute(context.Background(), &WeatherInput{Location: "London"})
	require.NoError(t, err)
	assert.Equal(t, "London", out.Location)
	assert.Equal(t, "GB", out.Country)
	assert.Equal(t, "21.5°C", out.Temperature)
	assert.Equal(t, "20.1°C", out.FeelsLike)
	assert.Equal(t, "Scattered Clouds", out.Description)
	assert.Equal(t, "65%", out.Humidity)
	assert.Equal(t, "3.6 m/s", out.WindSpeed)
	assert.Equal(t, tools.StatusSuccess, out.Status)
}

func TestWeatherTool_Execute_ImperialUnits(t *testing.T) {
	ts := mockWeatherServer()
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "imperial", nil)
	tool := NewWeatherTool(client, nil)

	out, err := tool.Execute(context.Background(), &WeatherInput{Location: "London"})
	require.NoError(t, err)
	assert.Equal(t, "21.5°F", out.Temperature)
	assert.Equal(t, "3.6 mph", out.WindSpeed)
}

func TestWeatherTool_Execute_ClientNotInitialized(t *testing.T) {
	tool := NewWeatherTool(nil, nil)

	_, err := tool.Execute(context.Background(), &WeatherInput{Location: "London"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openweather client not initialized")
}

func TestWeatherTool_Handle(t *testing.T) {
	ts := mockWeatherServer()
	defer ts.Close()

	newRequest := func(args map[string]interface{}) mcp.CallToolRequest {
		req := mcp.CallToolRequest{}
		req.Params.Name = "get_weather"
		req.Params.Arguments = args
		return req
	}

	t.Run("Success", func(t *testing.T) {
		client := NewClient("test-key", ts.URL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"location": "London"}))
		require.NoError(t, err)

		var out WeatherOutput
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &out))
		assert.Equal(t, "success", out.Status)
		assert.Equal(t, "London", out.Location)
		assert.Equal(t, "21.5°C", out.Temperature)
	})

	t.Run("LocationNotFound", func(t *testing.T) {
		client := NewClient("test-key", ts.URL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"location": "Atlantis"}))
		require.NoError(t, err)

		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &envelope))
		assert.Len(t, envelope, 2)
		assert.Equal(t, "error", envelope["status"])
		assert.Equal(t, "Location 'Atlantis' not found", envelope["error"])
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		client := NewClient("", ts.URL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"location": "London"}))
		require.NoError(t, err)

		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &envelope))
		assert.Equal(t, "error", envelope["status"])
		assert.Equal(t, "OpenWeather API key not configured. Please add OPENWEATHER_API_KEY to .env file", envelope["error"])
	})

	t.Run("NetworkError", func(t *testing.T) {
		down := mockWeatherServer()
		baseURL := down.URL
		down.Close()

		client := NewClient("test-key", baseURL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"location": "London"}))
		require.NoError(t, err)

		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &envelope))
		assert.Equal(t, "error", envelope["status"])
		assert.True(t, strings.HasPrefix(envelope["error"].(string), "Network error:"))
	})

	t.Run("APIError", func(t *testing.T) {
		client := NewClient("test-key", ts.URL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"location": "Teapot City"}))
		require.NoError(t, err)

		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &envelope))
		assert.Equal(t, "error", envelope["status"])
		assert.True(t, strings.HasPrefix(envelope["error"].(string), "Weather API error:"))
	})

	t.Run("EmptyLocation", func(t *testing.T) {
		client := NewClient("test-key", ts.URL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"location": "   "}))
		require.NoError(t, err)

		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &envelope))
		assert.Equal(t, "error", envelope["status"])
		assert.Equal(t, "location is required", envelope["error"])
	})

	t.Run("MissingArgument", func(t *testing.T) {
		client := NewClient("test-key", ts.URL, "metric", nil)
		tool := NewWeatherTool(client, nil)

		res, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{}))
		require.NoError(t, err)

		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &envelope))
		assert.Equal(t, "error", envelope["status"])
	})
}

func TestNewClient_RegistersWeatherTool(t *testing.T) {
	registry := tools.NewRegistry()
	NewClient("test-key", "", "", registry)

	registered := registry.GetTools()
	require.Len(t, registered, 1)
	assert.Equal(t, "get_weather", registered[0].Name)
}
