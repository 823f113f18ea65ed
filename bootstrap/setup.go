package bootstrap

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"toolbelt-mcp/config"
	"toolbelt-mcp/log"
	"toolbelt-mcp/plugins/core"
	"toolbelt-mcp/plugins/exchangerate"
	"toolbelt-mcp/plugins/openweather"
	"toolbelt-mcp/plugins/worldtime"
	"toolbelt-mcp/tools"
)

const (
	// ServerName identifies this server to MCP hosts
	ServerName = "toolbelt"

	// ServerVersion is reported during the MCP handshake
	ServerVersion = "1.0.0"
)

// App holds the initialized components of the application
type App struct {
	Server   *server.MCPServer
	Registry *tools.Registry
	Weather  *openweather.Client
	Exchange *exchangerate.Client
	Time     *worldtime.Client
	Core     *core.Client
}

// Setup initializes the application components based on the configuration.
// Missing API credentials are not fatal: the affected tool reports a
// configuration error per call instead.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	// 1. Init tools registry
	registry := tools.NewRegistry()

	// 2. Init tool providers; constructing a client registers its tools
	weatherClient := openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Units, registry)
	exchangeClient := exchangerate.NewClient(cfg.Exchange.APIKey, cfg.Exchange.BaseURL, registry)
	timeClient := worldtime.NewClient(cfg.Time.BaseURL, registry)
	coreClient := core.NewClient(registry)

	// 3. Init MCP server and attach the registered tools
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	registry.Apply(s)

	log.Infof(ctx, "Registered %d tools", len(registry.GetTools()))

	return &App{
		Server:   s,
		Registry: registry,
		Weather:  weatherClient,
		Exchange: exchangeClient,
		Time:     timeClient,
		Core:     coreClient,
	}, nil
}
