package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("default request timeout = %v", cfg.RequestTimeout)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("default poll interval = %v", cfg.PollInterval)
	}
	if cfg.MaxWait != 5*time.Minute {
		t.Fatalf("default max wait = %v", cfg.MaxWait)
	}
	if cfg.Debug {
		t.Fatalf("debug should default to off")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BGREMOVE_SERVICE_URL", "http://localhost:9999")
	t.Setenv("BGREMOVE_API_TOKEN", "secret")
	t.Setenv("BGREMOVE_MIN_MODEL_VERSION", "2.1.0")
	t.Setenv("BGREMOVE_REQUEST_TIMEOUT_SECONDS", "10")
	t.Setenv("BGREMOVE_POLL_INTERVAL_MS", "250")
	t.Setenv("BGREMOVE_MAX_WAIT_SECONDS", "60")
	t.Setenv("EDITOR_DEBUG", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BGRemoveURL != "http://localhost:9999" || cfg.BGRemoveToken != "secret" {
		t.Fatalf("service settings not read: %+v", cfg)
	}
	if cfg.MinModelVersion != "2.1.0" {
		t.Fatalf("min model version = %q", cfg.MinModelVersion)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.PollInterval != 250*time.Millisecond || cfg.MaxWait != 60*time.Second {
		t.Fatalf("timeouts not read: %+v", cfg)
	}
	if !cfg.Debug {
		t.Fatalf("debug flag not read")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("BGREMOVE_REQUEST_TIMEOUT_SECONDS", "soon")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for non-numeric timeout")
	}
	t.Setenv("BGREMOVE_REQUEST_TIMEOUT_SECONDS", "-5")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}

func TestValidateRequiresURL(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing service URL")
	}
	cfg.BGRemoveURL = "http://example.test"
	cfg.MaxWait = time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for max wait below poll interval")
	}
}
