package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appName = "hmwrap"

// EnvConfig names the environment variable that overrides discovery.
const EnvConfig = "HMWRAP_CONFIG"

// DefaultPath is where init writes the config: $XDG_CONFIG_HOME/hmwrap,
// falling back to ~/.config/hmwrap.
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}

// DefaultCachePath is where the lookup cache lives when cache.path is unset:
// $XDG_CACHE_HOME/hmwrap, falling back to ~/.cache/hmwrap.
func DefaultCachePath() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), appName, "cache.db")
}

// xdgDir resolves an XDG base directory on every platform. Relative values
// are ignored, as the XDG spec requires.
func xdgDir(env, homeSubdir string) string {
	if dir := os.Getenv(env); filepath.IsAbs(dir) {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, homeSubdir)
	}
	return "."
}

// searchPaths lists the config locations in the order Discover tries them.
// A project-local hmwrap.toml wins over a generic config.toml.
func searchPaths() []string {
	return []string{
		"hmwrap.toml",
		"config.toml",
		DefaultPath(),
		filepath.Join("/etc", appName, "config.toml"),
	}
}

// Discover finds the config file. HMWRAP_CONFIG, when set, must name an
// existing file; otherwise the first existing search path is returned.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := searchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found in %s", strings.Join(paths, ", "))
}
