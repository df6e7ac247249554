package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Radarr == nil && c.Sonarr == nil {
		errs = append(errs, "at least one service (radarr or sonarr) must be configured")
	}
	errs = append(errs, validateService("radarr", c.Radarr)...)
	errs = append(errs, validateService("sonarr", c.Sonarr)...)

	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl: must not be negative, got %s", c.Cache.TTL))
	}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}

func validateService(name string, svc *ServiceConfig) []string {
	if svc == nil {
		return nil
	}

	var errs []string
	if svc.URL == "" {
		errs = append(errs, name+".url: required")
	} else if u, err := url.Parse(svc.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("%s.url: must be an http(s) URL, got %q", name, svc.URL))
	}
	if svc.APIKey == "" {
		errs = append(errs, name+".api_key: required")
	}
	if svc.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("%s.timeout: must not be negative, got %s", name, svc.Timeout))
	}
	return errs
}
