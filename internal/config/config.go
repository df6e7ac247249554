// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
type Config struct {
	Radarr *ServiceConfig `toml:"radarr,omitempty"`
	Sonarr *ServiceConfig `toml:"sonarr,omitempty"`
	Cache  CacheConfig    `toml:"cache"`
	Log    LogConfig      `toml:"log"`
}

// ServiceConfig points at one Radarr or Sonarr instance.
type ServiceConfig struct {
	URL     string        `toml:"url"`
	APIKey  string        `toml:"api_key"`
	Timeout time.Duration `toml:"timeout,omitempty"`
}

// CacheConfig controls the lookup response cache.
type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	Path    string        `toml:"path"`
	TTL     time.Duration `toml:"ttl"`
}

// LogConfig sets the minimum slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 6 * time.Hour
	defaultLogLevel = "info"
)

// Load reads and parses the configuration file. A .env file next to it is
// loaded first; variables already set in the environment win.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults(md)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults(md toml.MetaData) {
	for _, svc := range []*ServiceConfig{c.Radarr, c.Sonarr} {
		if svc != nil && svc.Timeout == 0 {
			svc.Timeout = defaultTimeout
		}
	}
	if !md.IsDefined("cache", "enabled") {
		c.Cache.Enabled = true
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath()
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = defaultCacheTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Unresolvable references are left in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case "-":
			if value == "" {
				return arg
			}
			return value
		case "?":
			if value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})

	return out, missing
}
