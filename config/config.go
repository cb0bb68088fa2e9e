package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Harvester HarvesterConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// HarvesterConfig holds the page-harvester service configuration
type HarvesterConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds matching and offer-parsing configuration
type MatchingConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	PriceVarianceLimit  float64 `mapstructure:"price_variance_limit"`
	MaxCandidates       int     `mapstructure:"max_candidates"`
	ClampNegativePrices bool    `mapstructure:"clamp_negative_prices"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dealscope/")

	// Environment variable settings
	v.SetEnvPrefix("DEALSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Harvester defaults
	v.SetDefault("harvester.base_url", "http://localhost:7070")
	v.SetDefault("harvester.timeout", "90s")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Matching defaults
	v.SetDefault("matching.confidence_threshold", 0.20)
	v.SetDefault("matching.price_variance_limit", 0.6)
	v.SetDefault("matching.max_candidates", 10)
	v.SetDefault("matching.clamp_negative_prices", true)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Harvester.BaseURL == "" {
		return fmt.Errorf("harvester base URL is required (set DEALSCOPE_HARVESTER_BASE_URL)")
	}

	if config.Matching.ConfidenceThreshold < 0 || config.Matching.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got: %v", config.Matching.ConfidenceThreshold)
	}

	if config.Matching.PriceVarianceLimit <= 0 || config.Matching.PriceVarianceLimit > 1 {
		return fmt.Errorf("price variance limit must be in (0,1], got: %v", config.Matching.PriceVarianceLimit)
	}

	if config.Matching.MaxCandidates <= 0 {
		return fmt.Errorf("max candidates must be positive, got: %d", config.Matching.MaxCandidates)
	}

	return nil
}
