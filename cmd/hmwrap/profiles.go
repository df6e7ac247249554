package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/hmwrap/internal/match"
	"github.com/vmunix/hmwrap/pkg/arr"
)

var errNoProfile = errors.New("no quality profile configured")

// resolveProfile returns id when set, otherwise the first quality profile of
// the service.
func resolveProfile(ctx context.Context, c *arr.Client, id int) (int, error) {
	if id > 0 {
		return id, nil
	}
	profiles, err := c.QualityProfiles(ctx)
	if err != nil {
		return 0, err
	}
	if len(profiles) == 0 {
		return 0, errNoProfile
	}
	return profiles[0].ID, nil
}

// pickBest ranks lookup titles against the requested title.
func pickBest(title string, year int, candidates []match.Candidate) (match.Result, error) {
	res, ok := match.Best(title, year, candidates)
	if !ok {
		if len(candidates) == 0 {
			return res, fmt.Errorf("no results for %q", title)
		}
		return res, fmt.Errorf("no confident match for %q among %d results (try --tmdb/--tvdb)", title, len(candidates))
	}
	return res, nil
}
