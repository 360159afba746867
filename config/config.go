package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Rakuten RakutenConfig
	Scrape  ScrapeConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RakutenConfig holds marketplace search API configuration.
type RakutenConfig struct {
	ApplicationID string `mapstructure:"application_id"`
	BaseURL       string `mapstructure:"base_url"`
}

// ScrapeConfig holds listing-page fetch configuration.
type ScrapeConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Workers   int           `mapstructure:"workers"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/janscope/")

	v.SetEnvPrefix("JANSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("rakuten.application_id", "")
	v.SetDefault("rakuten.base_url", "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601")

	v.SetDefault("scrape.timeout", "5s")
	v.SetDefault("scrape.user_agent", "")
	v.SetDefault("scrape.workers", 5)
}

// validate validates the configuration.
func validate(config *Config) error {
	if config.Rakuten.ApplicationID == "" {
		return fmt.Errorf("marketplace application ID is required (set JANSCOPE_RAKUTEN_APPLICATION_ID)")
	}

	if config.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape timeout must be positive, got: %s", config.Scrape.Timeout)
	}

	if config.Scrape.Workers < 1 {
		return fmt.Errorf("scrape workers must be at least 1, got: %d", config.Scrape.Workers)
	}

	return nil
}
