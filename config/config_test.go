package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from a temp dir so a developer's .env cannot leak in.
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Target.URL != DefaultTargetURL {
		t.Errorf("Target.URL = %q", cfg.Target.URL)
	}
	if cfg.Target.ReadyTimeout != 15*time.Second {
		t.Errorf("Target.ReadyTimeout = %s, want 15s", cfg.Target.ReadyTimeout)
	}
	if cfg.Cache.Window != time.Hour {
		t.Errorf("Cache.Window = %s, want 1h", cfg.Cache.Window)
	}
	if cfg.Cache.File != "clubs.json" {
		t.Errorf("Cache.File = %q", cfg.Cache.File)
	}
	if !cfg.Cache.ServeStale {
		t.Error("Cache.ServeStale should default to true")
	}
	if len(cfg.Browser.BlockedResourceTypes) != 3 {
		t.Errorf("BlockedResourceTypes = %v", cfg.Browser.BlockedResourceTypes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUBFEED_PORT", "9090")
	t.Setenv("CLUBFEED_CACHE_WINDOW", "30m")
	t.Setenv("CLUBFEED_SERVE_STALE", "false")
	t.Setenv("CLUBFEED_BLOCKED_RESOURCES", " Image , Font ,,")
	t.Setenv("CLUBFEED_RATE_RPS", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Cache.Window != 30*time.Minute {
		t.Errorf("Cache.Window = %s, want 30m", cfg.Cache.Window)
	}
	if cfg.Cache.ServeStale {
		t.Error("Cache.ServeStale should be overridden to false")
	}
	got := cfg.Browser.BlockedResourceTypes
	if len(got) != 2 || got[0] != "Image" || got[1] != "Font" {
		t.Errorf("BlockedResourceTypes = %v, want [Image Font]", got)
	}
	if cfg.RateLimit.RequestsPerSecond != 5.0 {
		t.Errorf("invalid float should fall back, got %v", cfg.RateLimit.RequestsPerSecond)
	}
}
