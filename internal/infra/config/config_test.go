package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Name != "skywatch-client" || cfg.App.Env != "development" {
		t.Fatalf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.API.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.BaseDelay != 500*time.Millisecond {
		t.Fatalf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Sync.Interval != 5*time.Minute || !cfg.Sync.AutoRefresh {
		t.Fatalf("unexpected sync defaults: %+v", cfg.Sync)
	}
	if cfg.Sync.PassHours != 24 || cfg.Sync.PassMinElevation != 10.0 {
		t.Fatalf("unexpected pass window defaults: %+v", cfg.Sync)
	}
	if !cfg.Status.Enabled || cfg.Status.Host != "127.0.0.1" || cfg.Status.Port != 8090 {
		t.Fatalf("unexpected status defaults: %+v", cfg.Status)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKYWATCH_API_BASE_URL", "https://tracking.example.com")
	t.Setenv("SKYWATCH_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("SKYWATCH_SYNC_AUTO_REFRESH", "false")
	t.Setenv("SKYWATCH_SYNC_PASS_MIN_ELEVATION", "25.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://tracking.example.com" {
		t.Fatalf("base url override not applied: %s", cfg.API.BaseURL)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Fatalf("max attempts override not applied: %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Sync.AutoRefresh {
		t.Fatalf("auto refresh override not applied")
	}
	if cfg.Sync.PassMinElevation != 25.5 {
		t.Fatalf("min elevation override not applied: %v", cfg.Sync.PassMinElevation)
	}
}
