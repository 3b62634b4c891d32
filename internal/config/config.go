package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys such as api.base_url to LOOKING_GLASS_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config represents the complete application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Views    ViewsConfig    `mapstructure:"views"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds backend API configuration
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 disables the timeout
	UserAgent string        `mapstructure:"user_agent"`
}

// ViewsConfig holds the initial filters pages mount with
type ViewsConfig struct {
	ProbabilityCategory  string  `mapstructure:"probability_category"`
	ProbabilityTimeframe int     `mapstructure:"probability_timeframe"`
	TrendsTimeframe      string  `mapstructure:"trends_timeframe"`
	MinClusterSize       int     `mapstructure:"min_cluster_size"`
	MaxClusters          int     `mapstructure:"max_clusters"`
	MapMode              string  `mapstructure:"map_mode"`
	MinIntensity         float64 `mapstructure:"min_intensity"`
}

// WatchConfig holds the periodic refresh configuration
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// TelegramConfig holds Telegram digest configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// An empty path skips the file and uses defaults plus environment.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("LOOKING_GLASS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.user_agent", "lookingglass-cli")

	// View defaults
	v.SetDefault("views.probability_category", "Political")
	v.SetDefault("views.probability_timeframe", 30)
	v.SetDefault("views.trends_timeframe", "7d")
	v.SetDefault("views.min_cluster_size", 0)
	v.SetDefault("views.max_clusters", 0)
	v.SetDefault("views.map_mode", "points")
	v.SetDefault("views.min_intensity", 0.0)

	// Watch defaults
	v.SetDefault("watch.interval", "5m")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate API config
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	// Validate view config
	if c.Views.ProbabilityTimeframe < 1 || c.Views.ProbabilityTimeframe > 365 {
		return fmt.Errorf("views.probability_timeframe must be between 1 and 365 days")
	}
	validTrends := map[string]bool{"7d": true, "30d": true, "90d": true}
	if !validTrends[c.Views.TrendsTimeframe] {
		return fmt.Errorf("views.trends_timeframe must be one of: 7d, 30d, 90d")
	}
	if c.Views.MinClusterSize < 0 {
		return fmt.Errorf("views.min_cluster_size must not be negative")
	}
	if c.Views.MaxClusters < 0 || c.Views.MaxClusters > 20 {
		return fmt.Errorf("views.max_clusters must be between 0 and 20")
	}
	validModes := map[string]bool{"points": true, "heatmap": true, "clusters": true}
	if !validModes[c.Views.MapMode] {
		return fmt.Errorf("views.map_mode must be one of: points, heatmap, clusters")
	}
	if c.Views.MinIntensity < 0.0 || c.Views.MinIntensity > 1.0 {
		return fmt.Errorf("views.min_intensity must be between 0.0 and 1.0")
	}

	// Validate watch config
	if c.Watch.Interval < 10*time.Second {
		return fmt.Errorf("watch.interval must be at least 10 seconds")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
