package sonarr

import (
	"context"

	"github.com/vmunix/hmwrap/pkg/arr"
)

// Sonarr command names.
const (
	CommandRefreshSeries          = "RefreshSeries"
	CommandRescanSeries           = "RescanSeries"
	CommandEpisodeSearch          = "EpisodeSearch"
	CommandSeasonSearch           = "SeasonSearch"
	CommandSeriesSearch           = "SeriesSearch"
	CommandDownloadedEpisodesScan = "DownloadedEpisodesScan"
	CommandRssSync                = "RssSync"
	CommandRenameFiles            = "RenameFiles"
	CommandRenameSeries           = "RenameSeries"
	CommandBackup                 = "Backup"
	CommandMissingEpisodeSearch   = "missingEpisodeSearch"
)

// RefreshSeries refreshes series information and rescans disk. A zero id
// refreshes every series.
func (c *Client) RefreshSeries(ctx context.Context, seriesID int) (*arr.Command, error) {
	fields := map[string]any{}
	if seriesID > 0 {
		fields["seriesId"] = seriesID
	}
	return c.RunCommand(ctx, CommandRefreshSeries, fields)
}

// RescanSeries rescans disk for a series. A zero id rescans every series.
func (c *Client) RescanSeries(ctx context.Context, seriesID int) (*arr.Command, error) {
	fields := map[string]any{}
	if seriesID > 0 {
		fields["seriesId"] = seriesID
	}
	return c.RunCommand(ctx, CommandRescanSeries, fields)
}

// EpisodeSearch searches indexers for the given episodes.
func (c *Client) EpisodeSearch(ctx context.Context, episodeIDs ...int) (*arr.Command, error) {
	fields := map[string]any{}
	if len(episodeIDs) > 0 {
		fields["episodeIds"] = episodeIDs
	}
	return c.RunCommand(ctx, CommandEpisodeSearch, fields)
}

// SeasonSearch searches for every episode of one season.
func (c *Client) SeasonSearch(ctx context.Context, seriesID, seasonNumber int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandSeasonSearch, map[string]any{
		"seriesId":     seriesID,
		"seasonNumber": seasonNumber,
	})
}

// SeriesSearch searches for every episode of a series.
func (c *Client) SeriesSearch(ctx context.Context, seriesID int) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandSeriesSearch, map[string]any{"seriesId": seriesID})
}

// DownloadedEpisodesScan imports a finished download. Since the drone
// factory folder is gone, set opts.Path to the download folder.
func (c *Client) DownloadedEpisodesScan(ctx context.Context, opts arr.ScanOptions) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandDownloadedEpisodesScan, opts.Fields())
}

// RssSync performs an RSS sync with all enabled indexers.
func (c *Client) RssSync(ctx context.Context) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandRssSync, nil)
}

// RenameFiles renames the given episode files.
func (c *Client) RenameFiles(ctx context.Context, fileIDs ...int) (*arr.Command, error) {
	fields := map[string]any{}
	if len(fileIDs) > 0 {
		fields["files"] = fileIDs
	}
	return c.RunCommand(ctx, CommandRenameFiles, fields)
}

// RenameSeries renames all files of the given series.
func (c *Client) RenameSeries(ctx context.Context, seriesIDs ...int) (*arr.Command, error) {
	fields := map[string]any{}
	if len(seriesIDs) > 0 {
		fields["seriesIds"] = seriesIDs
	}
	return c.RunCommand(ctx, CommandRenameSeries, fields)
}

// Backup backs up the database and config file.
func (c *Client) Backup(ctx context.Context) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandBackup, nil)
}

// MissingEpisodeSearch runs a backlog search for missing episodes.
func (c *Client) MissingEpisodeSearch(ctx context.Context) (*arr.Command, error) {
	return c.RunCommand(ctx, CommandMissingEpisodeSearch, nil)
}
