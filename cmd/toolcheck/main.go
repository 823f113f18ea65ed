// toolcheck drives every registered tool once against the live upstream
// APIs and prints the raw response envelopes. Useful for verifying
// credentials and connectivity before wiring the server into an MCP host.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"

	"toolbelt-mcp/bootstrap"
	"toolbelt-mcp/config"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("OPENWEATHER_API_KEY") == "" {
		log.Println("Warning: OPENWEATHER_API_KEY not set, get_weather will report a configuration error")
	}
	if os.Getenv("EXCHANGERATE_API_KEY") == "" {
		log.Println("Warning: EXCHANGERATE_API_KEY not set, convert_currency will report a configuration error")
	}

	app, err := bootstrap.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Setup failed: %v", err)
	}

	checks := []struct {
		name string
		args map[string]interface{}
	}{
		{"calculate", map[string]interface{}{"operation": "add", "num1": 10.0, "num2": 5.0}},
		{"calculate", map[string]interface{}{"operation": "divide", "num1": 1.0, "num2": 0.0}},
		{"convert_units", map[string]interface{}{"value": 100.0, "from_unit": "km", "to_unit": "miles", "category": "length"}},
		{"convert_units", map[string]interface{}{"value": 32.0, "from_unit": "fahrenheit", "to_unit": "celsius", "category": "temperature"}},
		{"get_timezone_info", map[string]interface{}{"city": "Tokyo"}},
		{"get_weather", map[string]interface{}{"location": "London"}},
		{"convert_currency", map[string]interface{}{"amount": 100.0, "from_currency": "USD", "to_currency": "EUR"}},
	}

	ctx := context.Background()
	for i, check := range checks {
		argsJSON, _ := json.Marshal(check.args)
		log.Printf("Check %d: %s %s", i+1, check.name, string(argsJSON))

		res, err := app.Registry.ExecuteTool(ctx, check.name, check.args)
		if err != nil {
			log.Fatalf("ExecuteTool %s failed: %v", check.name, err)
		}
		log.Printf("  -> %s", resultText(res))
	}
}

func resultText(res *mcp.CallToolResult) string {
	if res == nil || len(res.Content) == 0 {
		return "(empty result)"
	}
	if text, ok := res.Content[0].(mcp.TextContent); ok {
		return text.Text
	}
	return "(non-text result)"
}
