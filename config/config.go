package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Target    TargetConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is passed to Chrome as --proxy-server.
	Proxy string

	// BlockedResourceTypes lists resource types to block while rendering.
	// default: ["Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string

	// AcceptLanguage is sent with every rendered request.
	AcceptLanguage string // default: "en-US,en;q=0.9"
}

// TargetConfig describes the club directory page.
type TargetConfig struct {
	// URL is the club directory page.
	URL string

	// ReadyTimeout bounds navigation plus the wait for the first club node.
	ReadyTimeout time.Duration // default: 15s
}

// CacheConfig controls the club snapshot cache.
type CacheConfig struct {
	// File is the durable snapshot path.
	File string // default: "clubs.json"

	// Window is the freshness window of the snapshot.
	Window time.Duration // default: 1h

	// ServeStale keeps serving the previous snapshot when a refresh fails.
	ServeStale bool // default: true
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// WebhookConfig controls snapshot event notifications.
type WebhookConfig struct {
	// URL receives snapshot events. Empty disables notifications.
	URL string

	// Secret signs webhook bodies with HMAC-SHA256 when set.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultTargetURL is the CampusGroups listing of all clubs.
const DefaultTargetURL = "https://arizona.campusgroups.com/club_signup?view=all&group_type=9999"

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("CLUBFEED_HOST", "0.0.0.0"),
			Port: envIntOr("CLUBFEED_PORT", 8080),
			Mode: envOr("CLUBFEED_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("CLUBFEED_HEADLESS", true),
			NoSandbox:  envBoolOr("CLUBFEED_NO_SANDBOX", false),
			BrowserBin: os.Getenv("CLUBFEED_BROWSER_BIN"),
			Proxy:      os.Getenv("CLUBFEED_PROXY"),
			BlockedResourceTypes: envSliceOr("CLUBFEED_BLOCKED_RESOURCES", []string{
				"Stylesheet", "Font", "Media",
			}),
			AcceptLanguage: envOr("CLUBFEED_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
		},
		Target: TargetConfig{
			URL:          envOr("CLUBFEED_TARGET_URL", DefaultTargetURL),
			ReadyTimeout: envDurationOr("CLUBFEED_READY_TIMEOUT", 15*time.Second),
		},
		Cache: CacheConfig{
			File:       envOr("CLUBFEED_CACHE_FILE", "clubs.json"),
			Window:     envDurationOr("CLUBFEED_CACHE_WINDOW", time.Hour),
			ServeStale: envBoolOr("CLUBFEED_SERVE_STALE", true),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("CLUBFEED_RATE_RPS", 5.0),
			Burst:             envIntOr("CLUBFEED_RATE_BURST", 10),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("CLUBFEED_WEBHOOK_URL"),
			Secret: os.Getenv("CLUBFEED_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("CLUBFEED_LOG_LEVEL", "info"),
			Format: envOr("CLUBFEED_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
