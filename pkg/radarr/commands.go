package radarr

import (
	"context"

	"github.com/vmunix/hmwrap/pkg/arr"
)

// Radarr command names.
const (
	CommandRefreshMovie            = "RefreshMovie"
	CommandRescanMovie             = "RescanMovie"
	CommandMoviesSearch            = "MoviesSearch"
	CommandDownloadedMoviesScan    = "DownloadedMoviesScan"
	CommandRssSync                 = "RssSync"
	CommandRenameFiles             = "RenameFiles"
	CommandRenameMovie             = "RenameMovie"
	CommandCutOffUnmetMoviesSearch = "CutOffUnmetMoviesSearch"
	CommandNetImportSync           = "NetImportSync"
	CommandMissingMoviesSearch     = "MissingMoviesSearch"
)

func idField(fields map[string]any, key string, id int) map[string]any {
	if id > 0 {
		fields[key] = id
	}
	return fields
}

func idsField(fields map[string]any, key string, ids []int) map[string]any {
	if len(ids) > 0 {
		fields[key] = ids
	}
	return fields
}

// RefreshMovie refreshes metadata from TMDb and rescans disk. A zero id
// refreshes every movie.
func (c *Client) RefreshMovie(ctx context.Context, movieID int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandRefreshMovie, idField(map[string]any{}, "movieId", movieID))
}

// RescanMovie rescans disk for a movie. A zero id rescans every movie.
func (c *Client) RescanMovie(ctx context.Context, movieID int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandRescanMovie, idField(map[string]any{}, "movieId", movieID))
}

// MoviesSearch searches indexers for the given movies.
func (c *Client) MoviesSearch(ctx context.Context, movieIDs ...int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandMoviesSearch, idsField(map[string]any{}, "movieIds", movieIDs))
}

// DownloadedMoviesScan imports a finished download. A folder given as Path is
// treated as a single job named after the release.
func (c *Client) DownloadedMoviesScan(ctx context.Context, opts arr.ScanOptions) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandDownloadedMoviesScan, opts.Fields())
}

// RssSync performs an RSS sync with all enabled indexers.
func (c *Client) RssSync(ctx context.Context) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandRssSync, nil)
}

// RenameFiles renames the given movie files.
func (c *Client) RenameFiles(ctx context.Context, fileIDs ...int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandRenameFiles, idsField(map[string]any{}, "files", fileIDs))
}

// RenameMovie renames all files of the given movies.
func (c *Client) RenameMovie(ctx context.Context, movieIDs ...int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandRenameMovie, idsField(map[string]any{}, "movieIds", movieIDs))
}

// CutOffUnmetMoviesSearch searches every movie below its quality cutoff.
// filterKey is monitored, all or status; filterValue must match it, e.g.
// monitored=true or status=released. This can exhaust indexer API limits.
func (c *Client) CutOffUnmetMoviesSearch(ctx context.Context, filterKey, filterValue string) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandCutOffUnmetMoviesSearch, filterFields(filterKey, filterValue))
}

// NetImportSync searches all lists for movies not yet added.
func (c *Client) NetImportSync(ctx context.Context) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandNetImportSync, nil)
}

// MissingMoviesSearch runs a backlog search for every missing movie, using
// the same filters as CutOffUnmetMoviesSearch.
func (c *Client) MissingMoviesSearch(ctx context.Context, filterKey, filterValue string) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandMissingMoviesSearch, filterFields(filterKey, filterValue))
}

func filterFields(key, value string) map[string]any {
	fields := map[string]any{}
	if key != "" {
		fields["filterKey"] = key
	}
	if value != "" {
		fields["filterValue"] = value
	}
	return fields
}
