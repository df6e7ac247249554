package sonarr

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vmunix/hmwrap/pkg/arr"
	"github.com/vmunix/hmwrap/pkg/dates"
)

var (
	// ErrSeriesNotFound is returned when a TVDB lookup has no result.
	ErrSeriesNotFound = errors.New("series not found in lookup")

	// ErrNoRootFolder is returned when Sonarr has no root folder configured.
	ErrNoRootFolder = errors.New("no root folder configured")

	// ErrInvalidSeries is returned when a request is missing required fields.
	ErrInvalidSeries = errors.New("invalid series")
)

// Client is a Sonarr API client. The shared endpoints (history, disk space,
// commands, system status...) come from the embedded arr.Client.
type Client struct {
	*arr.Client
}

// New creates a Sonarr client for the instance at hostURL.
func New(hostURL, apiKey string, opts ...arr.Option) *Client {
	opts = append([]arr.Option{arr.WithService("sonarr")}, opts...)
	return &Client{Client: arr.New(hostURL, apiKey, opts...)}
}

// Calendar returns episodes airing between start and end. Zero inputs let
// Sonarr pick its default window (today and tomorrow).
func (c *Client) Calendar(ctx context.Context, start, end dates.Input) ([]Episode, error) {
	q, err := arr.CalendarQuery(start, end)
	if err != nil {
		return nil, err
	}
	var episodes []Episode
	if err := c.Get(ctx, "/calendar", q, &episodes); err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}
	return episodes, nil
}

// Episodes returns all episodes of a series.
func (c *Client) Episodes(ctx context.Context, seriesID int) ([]Episode, error) {
	var episodes []Episode
	q := url.Values{"seriesId": {strconv.Itoa(seriesID)}}
	if err := c.Get(ctx, "/episode", q, &episodes); err != nil {
		return nil, fmt.Errorf("get episodes of series %d: %w", seriesID, err)
	}
	return episodes, nil
}

// Episode returns the episode with the given id.
func (c *Client) Episode(ctx context.Context, id int) (*Episode, error) {
	var ep Episode
	if err := c.Get(ctx, "/episode/"+strconv.Itoa(id), nil, &ep); err != nil {
		return nil, fmt.Errorf("get episode %d: %w", id, err)
	}
	return &ep, nil
}

// UpdateEpisode submits a full episode body. Sonarr currently only applies
// the monitored flag; fetch the episode first so other fields survive.
func (c *Client) UpdateEpisode(ctx context.Context, ep *Episode) (*Episode, error) {
	if ep == nil || ep.ID == 0 {
		return nil, fmt.Errorf("%w: episode id required", ErrInvalidSeries)
	}
	var updated Episode
	if err := c.Put(ctx, "/episode", ep, &updated); err != nil {
		return nil, fmt.Errorf("update episode %d: %w", ep.ID, err)
	}
	return &updated, nil
}

// EpisodeFiles returns all episode files of a series.
func (c *Client) EpisodeFiles(ctx context.Context, seriesID int) ([]EpisodeFile, error) {
	var files []EpisodeFile
	q := url.Values{"seriesId": {strconv.Itoa(seriesID)}}
	if err := c.Get(ctx, "/episodefile", q, &files); err != nil {
		return nil, fmt.Errorf("get episode files of series %d: %w", seriesID, err)
	}
	return files, nil
}

// EpisodeFile returns the episode file with the given id.
func (c *Client) EpisodeFile(ctx context.Context, id int) (*EpisodeFile, error) {
	var f EpisodeFile
	if err := c.Get(ctx, "/episodefile/"+strconv.Itoa(id), nil, &f); err != nil {
		return nil, fmt.Errorf("get episode file %d: %w", id, err)
	}
	return &f, nil
}

// DeleteEpisodeFile deletes an episode file from disk.
func (c *Client) DeleteEpisodeFile(ctx context.Context, id int) error {
	if err := c.Delete(ctx, "/episodefile/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("delete episode file %d: %w", id, err)
	}
	return nil
}

// WantedMissing returns monitored episodes without files, newest first.
func (c *Client) WantedMissing(ctx context.Context, page, pageSize int) (*WantedPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	q := url.Values{
		"page":     {strconv.Itoa(page)},
		"pageSize": {strconv.Itoa(pageSize)},
		"sortKey":  {"airDateUtc"},
		"sortDir":  {"desc"},
	}
	var wp WantedPage
	if err := c.Get(ctx, "/wanted/missing", q, &wp); err != nil {
		return nil, fmt.Errorf("get wanted missing: %w", err)
	}
	return &wp, nil
}

// Queue returns the download queue.
func (c *Client) Queue(ctx context.Context) ([]QueueItem, error) {
	var items []QueueItem
	if err := c.Get(ctx, "/queue", nil, &items); err != nil {
		return nil, fmt.Errorf("get queue: %w", err)
	}
	return items, nil
}

// DeleteQueueItem removes an item from the queue and the download client,
// optionally blacklisting the release.
func (c *Client) DeleteQueueItem(ctx context.Context, id int, blacklist bool) error {
	path := "/queue/" + strconv.Itoa(id)
	if blacklist {
		path += "?blacklist=true"
	}
	if err := c.Delete(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("delete queue item %d: %w", id, err)
	}
	return nil
}

// Series returns every series in the collection.
func (c *Client) Series(ctx context.Context) ([]Series, error) {
	var series []Series
	if err := c.Get(ctx, "/series", nil, &series); err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// SeriesByID returns the series with the given id.
func (c *Client) SeriesByID(ctx context.Context, id int) (*Series, error) {
	var s Series
	if err := c.Get(ctx, "/series/"+strconv.Itoa(id), nil, &s); err != nil {
		return nil, fmt.Errorf("get series %d: %w", id, err)
	}
	return &s, nil
}

// Lookup searches for new series by name, or by TVDB id with "tvdb:<id>".
func (c *Client) Lookup(ctx context.Context, term string) ([]Series, error) {
	var series []Series
	q := url.Values{"term": {term}}
	if err := c.GetCached(ctx, "/series/lookup", q, &series); err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}
	return series, nil
}

// BuildSeries looks up a series by TVDB id and prepares an add request in
// the first root folder, monitored, with season folders and no initial
// search.
func (c *Client) BuildSeries(ctx context.Context, tvdbID, qualityProfileID int) (*AddSeriesRequest, error) {
	results, err := c.Lookup(ctx, "tvdb:"+strconv.Itoa(tvdbID))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("tvdb %d: %w", tvdbID, ErrSeriesNotFound)
	}
	found := results[0]

	roots, err := c.RootFolders(ctx)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, ErrNoRootFolder
	}

	return &AddSeriesRequest{
		Title:            found.Title,
		Seasons:          found.Seasons,
		Path:             joinPath(roots[0].Path, found.Title),
		QualityProfileID: qualityProfileID,
		SeasonFolder:     true,
		Monitored:        true,
		TvdbID:           tvdbID,
		Images:           found.Images,
		TitleSlug:        found.TitleSlug,
		AddOptions: &AddOptions{
			IgnoreEpisodesWithFiles:    true,
			IgnoreEpisodesWithoutFiles: true,
		},
	}, nil
}

func joinPath(root, title string) string {
	sep := "/"
	if strings.Contains(root, `\`) && !strings.Contains(root, "/") {
		sep = `\`
	}
	return strings.TrimRight(root, `/\`) + sep + title
}

// AddSeries adds a series to the collection.
func (c *Client) AddSeries(ctx context.Context, req *AddSeriesRequest) (*Series, error) {
	if req == nil || req.Title == "" || req.TvdbID == 0 || req.QualityProfileID == 0 {
		return nil, fmt.Errorf("%w: title, tvdbId and qualityProfileId required", ErrInvalidSeries)
	}
	if req.Path == "" && req.RootFolderPath == "" {
		return nil, fmt.Errorf("%w: path or rootFolderPath required", ErrInvalidSeries)
	}
	var s Series
	if err := c.Post(ctx, "/series", req, &s); err != nil {
		return nil, fmt.Errorf("add series %q: %w", req.Title, err)
	}
	return &s, nil
}

// UpdateSeries replaces an existing series.
func (c *Client) UpdateSeries(ctx context.Context, s *Series) (*Series, error) {
	if s == nil || s.ID == 0 {
		return nil, fmt.Errorf("%w: series id required", ErrInvalidSeries)
	}
	var updated Series
	if err := c.Put(ctx, "/series", s, &updated); err != nil {
		return nil, fmt.Errorf("update series %d: %w", s.ID, err)
	}
	return &updated, nil
}

// DeleteSeries removes a series, optionally deleting its files.
func (c *Client) DeleteSeries(ctx context.Context, id int, deleteFiles bool) error {
	path := "/series/" + strconv.Itoa(id)
	var body any
	if deleteFiles {
		path += "?deleteFiles=true"
		body = map[string]bool{"deleteFiles": true}
	}
	if err := c.Delete(ctx, path, body, nil); err != nil {
		return fmt.Errorf("delete series %d: %w", id, err)
	}
	return nil
}
