package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Weather  WeatherConfig  `yaml:"weather"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Time     TimeConfig     `yaml:"time"`
}

type ServerConfig struct {
	Transport string `yaml:"transport" env:"MCP_TRANSPORT" env-default:"stdio"`
	Addr      string `yaml:"addr" env:"MCP_ADDR" env-default:":8000"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// WeatherConfig holds OpenWeatherMap settings. The API key is optional at
// startup; without it get_weather reports a configuration error per call.
type WeatherConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENWEATHER_API_KEY"`
	BaseURL string `yaml:"base_url" env:"OPENWEATHER_BASE_URL" env-default:"https://api.openweathermap.org/data/2.5"`
	Units   string `yaml:"units" env:"OPENWEATHER_UNITS" env-default:"metric"`
}

// ExchangeConfig holds ExchangeRate-API settings. Same key policy as weather.
type ExchangeConfig struct {
	APIKey  string `yaml:"api_key" env:"EXCHANGERATE_API_KEY"`
	BaseURL string `yaml:"base_url" env:"EXCHANGERATE_BASE_URL" env-default:"https://v6.exchangerate-api.com/v6"`
}

// TimeConfig holds WorldTimeAPI settings. The API is public, no key needed.
type TimeConfig struct {
	BaseURL string `yaml:"base_url" env:"WORLDTIME_BASE_URL" env-default:"https://worldtimeapi.org/api"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	// A missing file is fine, we fall back to env vars only.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
