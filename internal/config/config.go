// Package config loads client settings from the environment, after merging in
// the project's .env file during development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"fitpromo/internal/utils"
)

const (
	DefaultAPIURL          = "http://localhost:8000"
	DefaultPollInterval    = 3 * time.Second
	DefaultMessageInterval = 3 * time.Second
	DefaultHTTPTimeout     = 30 * time.Second
)

type Config struct {
	APIURL          string
	PollInterval    time.Duration
	MessageInterval time.Duration
	HTTPTimeout     time.Duration

	// Origins the development web view may be served from.
	AllowedDevOrigins []string

	DBPath  string // empty selects the build-dependent default
	Env     string // "development" or "production"
	LogFile string
}

// Load reads configuration from environment variables, applying defaults
// where a value is unset.
func Load() (*Config, error) {
	if err := utils.LoadEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		APIURL:  strings.TrimRight(envOrDefault("FITPROMO_API_URL", DefaultAPIURL), "/"),
		DBPath:  os.Getenv("FITPROMO_DB_PATH"),
		Env:     envOrDefault("APP_ENV", "development"),
		LogFile: os.Getenv("FITPROMO_LOG_FILE"),
	}
	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("FITPROMO_API_URL: %w", err)
	}

	var err error
	if cfg.PollInterval, err = durationOrDefault("FITPROMO_POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.MessageInterval, err = durationOrDefault("FITPROMO_MESSAGE_INTERVAL", DefaultMessageInterval); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = durationOrDefault("FITPROMO_HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}

	cfg.AllowedDevOrigins = utils.SplitCSV(os.Getenv("FITPROMO_ALLOWED_DEV_ORIGINS"))
	if path := os.Getenv("FITPROMO_ALLOWED_DEV_ORIGINS_FILE"); path != "" {
		lines, err := utils.ReadNonEmptyLines(path)
		if err != nil {
			return nil, fmt.Errorf("reading allowed origins file: %w", err)
		}
		cfg.AllowedDevOrigins = append(cfg.AllowedDevOrigins, lines...)
	}

	return cfg, nil
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env != "production" && c.Env != "prod"
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
