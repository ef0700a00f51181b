package ratelimit

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "")

	config := LoadConfig()
	if !config.Enabled {
		t.Fatal("expected rate limiting enabled by default")
	}
	if config.DefaultLimit != 1000 {
		t.Errorf("DefaultLimit = %d, want 1000", config.DefaultLimit)
	}
	if config.DefaultWindow != time.Minute {
		t.Errorf("DefaultWindow = %v, want 1m", config.DefaultWindow)
	}
	if len(config.EndpointConfigs) != len(DefaultEndpointConfigs()) {
		t.Errorf("got %d endpoint configs, want %d", len(config.EndpointConfigs), len(DefaultEndpointConfigs()))
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_CLEANUP_INTERVAL", "not-a-duration")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1 , ,10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "192.168.1.9")

	config := LoadConfig()
	if config.DefaultLimit != 42 {
		t.Errorf("DefaultLimit = %d, want 42", config.DefaultLimit)
	}
	if config.DefaultWindow != 30*time.Second {
		t.Errorf("DefaultWindow = %v, want 30s", config.DefaultWindow)
	}
	if config.CleanupInterval != 5*time.Minute {
		t.Errorf("CleanupInterval = %v, want fallback 5m", config.CleanupInterval)
	}
	if len(config.Whitelist) != 2 || !config.Whitelist["10.0.0.1"] || !config.Whitelist["10.0.0.2"] {
		t.Errorf("Whitelist = %v", config.Whitelist)
	}
	if !config.Blacklist["192.168.1.9"] {
		t.Errorf("Blacklist = %v", config.Blacklist)
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	config := LoadConfig()
	if config.Enabled {
		t.Fatal("expected rate limiting disabled")
	}
	if len(config.EndpointConfigs) != 0 {
		t.Errorf("disabled config should carry no endpoint rules, got %d", len(config.EndpointConfigs))
	}
}
