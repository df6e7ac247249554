package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRadarr() *ServiceConfig {
	return &ServiceConfig{URL: "http://localhost:7878", APIKey: "radarr-key"}
}

func TestValidate_MinimalValid(t *testing.T) {
	cfg := &Config{Radarr: validRadarr()}
	assert.Empty(t, cfg.Validate(), "expected no errors for minimal valid config")

	cfg = &Config{Sonarr: &ServiceConfig{URL: "https://sonarr.example.com/api", APIKey: "k"}}
	assert.Empty(t, cfg.Validate())
}

func TestValidate_NoService(t *testing.T) {
	errs := (&Config{}).Validate()
	assert.True(t, containsError(errs, "at least one service"), "expected service error, got %v", errs)
}

func TestValidate_ServiceFields(t *testing.T) {
	tests := []struct {
		name string
		svc  *ServiceConfig
		want string
	}{
		{"missing url", &ServiceConfig{APIKey: "k"}, "sonarr.url: required"},
		{"bad scheme", &ServiceConfig{URL: "ftp://host", APIKey: "k"}, "sonarr.url: must be an http(s) URL"},
		{"no host", &ServiceConfig{URL: "localhost:8989", APIKey: "k"}, "sonarr.url: must be an http(s) URL"},
		{"missing key", &ServiceConfig{URL: "http://localhost:8989"}, "sonarr.api_key: required"},
		{"negative timeout", &ServiceConfig{URL: "http://localhost:8989", APIKey: "k", Timeout: -time.Second}, "sonarr.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Radarr: validRadarr(), Sonarr: tt.svc}
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %q, got %v", tt.want, errs)
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := &Config{Radarr: validRadarr(), Log: LogConfig{Level: "verbose"}}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log.level"), "expected log.level error, got %v", errs)
}

func TestValidate_NegativeCacheTTL(t *testing.T) {
	cfg := &Config{Radarr: validRadarr(), Cache: CacheConfig{TTL: -time.Hour}}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "cache.ttl"), "expected cache.ttl error, got %v", errs)
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
