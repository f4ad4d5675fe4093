// Package config loads editor settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the editor's service integrations.
type Config struct {
	// Background removal service.
	BGRemoveURL      string
	BGRemoveToken    string
	MinModelVersion  string
	RequestTimeout   time.Duration
	PollInterval     time.Duration
	MaxWait          time.Duration

	// Debug enables verbose logging across packages.
	Debug bool
}

// Defaults returns the configuration used when no environment overrides
// are set. The background removal URL has no sensible default and stays
// empty until configured.
func Defaults() Config {
	return Config{
		MinModelVersion: "1.0.0",
		RequestTimeout:  30 * time.Second,
		PollInterval:    2 * time.Second,
		MaxWait:         5 * time.Minute,
	}
}

// Load reads a .env file if one exists, then builds a Config from the
// environment. A missing .env is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Defaults()

	cfg.BGRemoveURL = os.Getenv("BGREMOVE_SERVICE_URL")
	cfg.BGRemoveToken = os.Getenv("BGREMOVE_API_TOKEN")
	if v := os.Getenv("BGREMOVE_MIN_MODEL_VERSION"); v != "" {
		cfg.MinModelVersion = v
	}

	if v := os.Getenv("BGREMOVE_REQUEST_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid BGREMOVE_REQUEST_TIMEOUT_SECONDS %q", v)
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("BGREMOVE_POLL_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("invalid BGREMOVE_POLL_INTERVAL_MS %q", v)
		}
		cfg.PollInterval = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("BGREMOVE_MAX_WAIT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid BGREMOVE_MAX_WAIT_SECONDS %q", v)
		}
		cfg.MaxWait = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("EDITOR_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EDITOR_DEBUG %q", v)
		}
		cfg.Debug = debug
	}

	return cfg, nil
}

// Validate checks that the settings needed for background removal are
// present and coherent. It is only required before calling that service;
// the local pipeline runs without any configuration.
func (c Config) Validate() error {
	if c.BGRemoveURL == "" {
		return fmt.Errorf("BGREMOVE_SERVICE_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.MaxWait < c.PollInterval {
		return fmt.Errorf("max wait must be at least one poll interval")
	}
	return nil
}
