// Package config loads process configuration from a .env file, the
// environment, and an optional YAML file.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config contains process configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string. Empty means run on
	// the in-memory store.
	DatabaseURL string `mapstructure:"database_url"`

	// TomTomAPIKey and HereAPIKey credential the provider adapters. An
	// adapter with an empty key fails fast without a network call.
	TomTomAPIKey string `mapstructure:"tomtom_api_key"`
	HereAPIKey   string `mapstructure:"here_api_key"`

	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `mapstructure:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// HTTPTimeout bounds every adapter request.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// HereInsecureTLS skips certificate verification on the HERE adapter's
	// transport only. Deliberate trust relaxation for that provider's
	// certificate quirks; never applied to other adapters.
	HereInsecureTLS bool `mapstructure:"here_insecure_tls"`

	// DefaultSources is the provider set used when a collect call names none.
	DefaultSources []string `mapstructure:"default_sources"`
}

// Load reads configuration. A .env file is applied first when present, then
// environment variables (DATABASE_URL, TOMTOM_API_KEY, ...) override the
// optional YAML file at cfgFile.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	v := viper.New()
	// Every key needs a default registered or AutomaticEnv alone will not
	// surface it through Unmarshal.
	v.SetDefault("database_url", "")
	v.SetDefault("tomtom_api_key", "")
	v.SetDefault("here_api_key", "")
	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("here_insecure_tls", false)
	v.SetDefault("default_sources", []string{"tomtom", "here"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}
