// Package config loads runtime settings. Precedence, lowest to highest:
// built-in defaults, .ls-natal.yaml (cwd or home), LSNATAL_* environment
// variables. A .env file in the cwd is folded into the environment first,
// and GEMINI_API_KEY is honored when no key is configured explicitly.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for one invocation.
type Config struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Ephemeris   string        `mapstructure:"ephemeris"`
	ChartSize   float64       `mapstructure:"chart_size"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	LogLevel    string        `mapstructure:"log_level"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file or environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	viper.SetDefault("api_key", "")
	viper.SetDefault("model", "gemini-2.0-flash")
	viper.SetDefault("base_url", "")
	viper.SetDefault("ephemeris", "analytic")
	viper.SetDefault("chart_size", 600.0)
	viper.SetDefault("http_timeout", 30*time.Second)
	viper.SetDefault("log_level", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}

	if cfg.ChartSize <= 0 {
		return cfg, fmt.Errorf("chart_size must be positive, got %v", cfg.ChartSize)
	}
	if cfg.HTTPTimeout <= 0 {
		return cfg, fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}

	return cfg, nil
}
