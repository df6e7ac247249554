package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vmunix/hmwrap/internal/cache"
	"github.com/vmunix/hmwrap/internal/config"
	"github.com/vmunix/hmwrap/pkg/arr"
	"github.com/vmunix/hmwrap/pkg/radarr"
	"github.com/vmunix/hmwrap/pkg/sonarr"
)

var (
	errRadarrNotConfigured = errors.New("radarr is not configured")
	errSonarrNotConfigured = errors.New("sonarr is not configured")
)

// app carries the clients built from the loaded config.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	cache  *cache.Store
	radarr *radarr.Client
	sonarr *sonarr.Client
}

func newApp(ctx context.Context, opts *globalOptions, stderr io.Writer) (*app, error) {
	path := opts.configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, fmt.Errorf("%w (run 'hmwrap init' to create one)", err)
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: newLogger(stderr, cfg.Log.Level, opts.verbose),
	}

	if cfg.Cache.Enabled {
		store, err := cache.Open(ctx, cfg.Cache.Path)
		if err != nil {
			// Lookups still work uncached.
			a.log.Warn("lookup cache unavailable", "path", cfg.Cache.Path, "error", err)
		} else {
			a.cache = store
			if n, err := store.Prune(ctx); err != nil {
				a.log.Warn("cache prune failed", "error", err)
			} else if n > 0 {
				a.log.Debug("pruned expired cache entries", "count", n)
			}
		}
	}

	if cfg.Radarr != nil {
		a.radarr = radarr.New(cfg.Radarr.URL, cfg.Radarr.APIKey, a.clientOptions(cfg.Radarr)...)
	}
	if cfg.Sonarr != nil {
		a.sonarr = sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey, a.clientOptions(cfg.Sonarr)...)
	}

	return a, nil
}

func (a *app) clientOptions(svc *config.ServiceConfig) []arr.Option {
	opts := []arr.Option{
		arr.WithTimeout(svc.Timeout),
		arr.WithLogger(a.log),
		arr.WithUserAgent("hmwrap/" + version),
	}
	if a.cache != nil {
		opts = append(opts, arr.WithCache(a.cache, a.cfg.Cache.TTL))
	}
	return opts
}

func (a *app) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

func (a *app) radarrClient() (*radarr.Client, error) {
	if a.radarr == nil {
		return nil, errRadarrNotConfigured
	}
	return a.radarr, nil
}

func (a *app) sonarrClient() (*sonarr.Client, error) {
	if a.sonarr == nil {
		return nil, errSonarrNotConfigured
	}
	return a.sonarr, nil
}

// service returns the shared *arr client for "radarr" or "sonarr".
func (a *app) service(name string) (*arr.Client, error) {
	switch name {
	case "radarr":
		c, err := a.radarrClient()
		if err != nil {
			return nil, err
		}
		return c.Client, nil
	case "sonarr":
		c, err := a.sonarrClient()
		if err != nil {
			return nil, err
		}
		return c.Client, nil
	default:
		return nil, fmt.Errorf("unknown service %q (want radarr or sonarr)", name)
	}
}

// services returns the shared clients of every configured service.
func (a *app) services() []*arr.Client {
	var out []*arr.Client
	if a.radarr != nil {
		out = append(out, a.radarr.Client)
	}
	if a.sonarr != nil {
		out = append(out, a.sonarr.Client)
	}
	return out
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// withApp loads the config and runs fn with the resulting clients.
func withApp(ctx context.Context, opts *globalOptions, stderr io.Writer, fn func(*app) error) error {
	a, err := newApp(ctx, opts, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}
