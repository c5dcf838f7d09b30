package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Holds all the configuration fields for the analysis service.
type Config struct {
	// Basic server settings
	ServerPort string `mapstructure:"SERVER_PORT"`

	// Upstream posts API
	UpstreamURL  string `mapstructure:"UPSTREAM_URL"`
	FetchTimeout int    `mapstructure:"FETCH_TIMEOUT"` // seconds

	// Anomaly detection thresholds
	ShortTitleThreshold int     `mapstructure:"SHORT_TITLE_THRESHOLD"`
	SimilarityThreshold float64 `mapstructure:"SIMILARITY_THRESHOLD"`
	BotThreshold        int     `mapstructure:"BOT_THRESHOLD"`

	// Circuit breaker around the upstream API
	CBFailureThreshold int `mapstructure:"CB_FAILURE_THRESHOLD"`
	CBResetTimeout     int `mapstructure:"CB_RESET_TIMEOUT"` // seconds

	// Outbound rate limiting
	RateLimit float64 `mapstructure:"RATE_LIMIT"` // requests per second
	RateBurst int     `mapstructure:"RATE_BURST"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Initializes Viper and unmarshals config into our Config struct.
// Environment variables override the defaults.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("UPSTREAM_URL", "https://jsonplaceholder.typicode.com")
	viper.SetDefault("FETCH_TIMEOUT", 10)
	viper.SetDefault("SHORT_TITLE_THRESHOLD", 15)
	viper.SetDefault("SIMILARITY_THRESHOLD", 0.8)
	viper.SetDefault("BOT_THRESHOLD", 5)
	viper.SetDefault("CB_FAILURE_THRESHOLD", 5)
	viper.SetDefault("CB_RESET_TIMEOUT", 30)
	viper.SetDefault("RATE_LIMIT", 5.0)
	viper.SetDefault("RATE_BURST", 10)
	viper.SetDefault("LOG_LEVEL", "info")

	// Read environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
