// Package sonarr provides a client for the Sonarr TV-series-collection API.
package sonarr

import "github.com/vmunix/hmwrap/pkg/arr"

// Season is one season of a series.
type Season struct {
	SeasonNumber int  `json:"seasonNumber"`
	Monitored    bool `json:"monitored"`
}

// Series is a series in the collection or a lookup result.
type Series struct {
	ID               int         `json:"id,omitempty"`
	Title            string      `json:"title"`
	SortTitle        string      `json:"sortTitle,omitempty"`
	TitleSlug        string      `json:"titleSlug,omitempty"`
	Year             int         `json:"year,omitempty"`
	Overview         string      `json:"overview,omitempty"`
	Status           string      `json:"status,omitempty"` // continuing, ended
	Network          string      `json:"network,omitempty"`
	Path             string      `json:"path,omitempty"`
	QualityProfileID int         `json:"qualityProfileId,omitempty"`
	SeasonFolder     bool        `json:"seasonFolder"`
	Monitored        bool        `json:"monitored"`
	SeriesType       string      `json:"seriesType,omitempty"`
	TvdbID           int         `json:"tvdbId"`
	TvRageID         int         `json:"tvRageId,omitempty"`
	ImdbID           string      `json:"imdbId,omitempty"`
	FirstAired       string      `json:"firstAired,omitempty"`
	SeasonCount      int         `json:"seasonCount,omitempty"`
	EpisodeCount     int         `json:"episodeCount,omitempty"`
	EpisodeFileCount int         `json:"episodeFileCount,omitempty"`
	SizeOnDisk       int64       `json:"sizeOnDisk,omitempty"`
	Seasons          []Season    `json:"seasons,omitempty"`
	Images           []arr.Image `json:"images,omitempty"`
	Added            string      `json:"added,omitempty"`
}

// Episode is a single episode. Calendar entries carry the parent series.
type Episode struct {
	ID                       int     `json:"id"`
	SeriesID                 int     `json:"seriesId"`
	EpisodeFileID            int     `json:"episodeFileId,omitempty"`
	SeasonNumber             int     `json:"seasonNumber"`
	EpisodeNumber            int     `json:"episodeNumber"`
	AbsoluteEpisodeNumber    int     `json:"absoluteEpisodeNumber,omitempty"`
	Title                    string  `json:"title"`
	AirDate                  string  `json:"airDate,omitempty"`
	AirDateUtc               string  `json:"airDateUtc,omitempty"`
	Overview                 string  `json:"overview,omitempty"`
	HasFile                  bool    `json:"hasFile"`
	Monitored                bool    `json:"monitored"`
	UnverifiedSceneNumbering bool    `json:"unverifiedSceneNumbering,omitempty"`
	Series                   *Series `json:"series,omitempty"`
}

// EpisodeFile is a file on disk backing one or more episodes.
type EpisodeFile struct {
	ID           int    `json:"id"`
	SeriesID     int    `json:"seriesId"`
	SeasonNumber int    `json:"seasonNumber"`
	RelativePath string `json:"relativePath"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	DateAdded    string `json:"dateAdded"`
	SceneName    string `json:"sceneName,omitempty"`
	Quality      any    `json:"quality,omitempty"`
}

// WantedPage is a paged list of monitored episodes without files.
type WantedPage struct {
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
	SortKey       string    `json:"sortKey"`
	SortDirection string    `json:"sortDirection"`
	TotalRecords  int       `json:"totalRecords"`
	Records       []Episode `json:"records"`
}

// AddSeriesRequest is the body of an add-series call. BuildSeries fills it
// from a lookup result.
type AddSeriesRequest struct {
	Title            string      `json:"title"`
	Seasons          []Season    `json:"seasons"`
	Path             string      `json:"path,omitempty"`
	RootFolderPath   string      `json:"rootFolderPath,omitempty"`
	QualityProfileID int         `json:"qualityProfileId"`
	SeasonFolder     bool        `json:"seasonFolder"`
	Monitored        bool        `json:"monitored"`
	TvdbID           int         `json:"tvdbId"`
	Images           []arr.Image `json:"images,omitempty"`
	TitleSlug        string      `json:"titleSlug"`
	AddOptions       *AddOptions `json:"addOptions,omitempty"`
}

// AddOptions control what Sonarr does right after adding a series.
type AddOptions struct {
	IgnoreEpisodesWithFiles    bool `json:"ignoreEpisodesWithFiles"`
	IgnoreEpisodesWithoutFiles bool `json:"ignoreEpisodesWithoutFiles"`
	SearchForMissingEpisodes   bool `json:"searchForMissingEpisodes,omitempty"`
}

// QueueItem is a Sonarr download queue entry.
type QueueItem struct {
	arr.QueueItem
	Series  *Series  `json:"series,omitempty"`
	Episode *Episode `json:"episode,omitempty"`
}
