package radarr

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

// ErrInvalidMovie is returned when a request is missing required movie fields.
var ErrInvalidMovie = errors.New("invalid movie")

// Client is a Radarr API client. The shared endpoints (history, disk space,
// commands, system status...) come from the embedded arr.Client.
type Client struct {
	*arr.Client
}

// New creates a Radarr client for the instance at hostURL.
func New(hostURL, apiKey string, opts ...arr.Option) *Client {
	opts = append([]arr.Option{arr.WithService("radarr")}, opts...)
	return &Client{Client: arr.New(hostURL, apiKey, opts...)}
}

// Calendar returns movies with a release between start and end. Zero inputs
// let Radarr pick its default window (today and tomorrow).
func (c *Client) Calendar(ctx context.Context, start, end dates.Input) ([]Movie, error) {
	q, err := arr.CalendarQuery(start, end)
	if err != nil {
		return nil, err
	}
	var movies []Movie
	if err := c.Get(ctx, "/calendar", q, &movies); err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}
	return movies, nil
}

// Movies returns every movie in the collection.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.Get(ctx, "/movie", nil, &movies); err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}
	return movies, nil
}

// Movie returns the movie with the given id.
func (c *Client) Movie(ctx context.Context, id int) (*Movie, error) {
	var m Movie
	if err := c.Get(ctx, "/movie/"+strconv.Itoa(id), nil, &m); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &m, nil
}

// AddMovie adds a movie to the collection.
func (c *Client) AddMovie(ctx context.Context, opts AddMovieOptions) (*Movie, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := addMovieRequest{
		Title:            opts.Title,
		QualityProfileID: opts.QualityProfileID,
		TitleSlug:        opts.TitleSlug,
		TmdbID:           opts.TmdbID,
		Year:             opts.Year,
		Path:             opts.Path,
		RootFolderPath:   opts.RootFolderPath,
		Images:           opts.Images,
		Monitored:        opts.Monitored,
	}
	if opts.SearchForMovie != nil {
		req.AddOptions = &movieAddOptions{SearchForMovie: *opts.SearchForMovie}
	}

	var m Movie
	if err := c.Post(ctx, "/movie", req, &m); err != nil {
		return nil, fmt.Errorf("add movie %q: %w", opts.Title, err)
	}
	return &m, nil
}

func (o AddMovieOptions) validate() error {
	var missing []string
	if o.Title == "" {
		missing = append(missing, "title")
	}
	if o.QualityProfileID == 0 {
		missing = append(missing, "qualityProfileId")
	}
	if o.TitleSlug == "" {
		missing = append(missing, "titleSlug")
	}
	if o.TmdbID == 0 {
		missing = append(missing, "tmdbId")
	}
	if o.Year == 0 {
		missing = append(missing, "year")
	}
	if o.Path == "" && o.RootFolderPath == "" {
		missing = append(missing, "path or rootFolderPath")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidMovie, strings.Join(missing, ", "))
	}
	return nil
}

// UpdateMovie replaces a movie. Fetch it with Movie first and submit the full
// body, since fields left empty are cleared.
func (c *Client) UpdateMovie(ctx context.Context, m *Movie) (*Movie, error) {
	if m == nil || m.ID == 0 {
		return nil, fmt.Errorf("%w: id required for update", ErrInvalidMovie)
	}
	var updated Movie
	if err := c.Put(ctx, "/movie", m, &updated); err != nil {
		return nil, fmt.Errorf("update movie %d: %w", m.ID, err)
	}
	return &updated, nil
}

// DeleteMovie removes the movie with the given id.
func (c *Client) DeleteMovie(ctx context.Context, id int, opts DeleteMovieOptions) error {
	var body any
	if opts.DeleteFiles || opts.AddExclusion {
		body = map[string]bool{
			"deleteFiles":  opts.DeleteFiles,
			"addExclusion": opts.AddExclusion,
		}
	}

	q := url.Values{}
	if opts.DeleteFiles {
		q.Set("deleteFiles", "true")
	}
	if opts.AddExclusion {
		q.Set("addExclusion", "true")
	}
	path := "/movie/" + strconv.Itoa(id)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	// Older releases read the flags from the body, newer ones from the query.
	if err := c.Delete(ctx, path, body, nil); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	return nil
}

// Lookup searches for movies by name.
func (c *Client) Lookup(ctx context.Context, term string) ([]Movie, error) {
	var movies []Movie
	q := url.Values{"term": {term}}
	if err := c.GetCached(ctx, "/movie/lookup", q, &movies); err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}
	return movies, nil
}

// LookupTMDB fetches a movie by TMDB id.
func (c *Client) LookupTMDB(ctx context.Context, tmdbID int) (*Movie, error) {
	var m Movie
	q := url.Values{"tmdbId": {strconv.Itoa(tmdbID)}}
	if err := c.GetCached(ctx, "/movie/lookup/tmdb", q, &m); err != nil {
		return nil, fmt.Errorf("lookup tmdb %d: %w", tmdbID, err)
	}
	return &m, nil
}

// LookupIMDB fetches a movie by IMDb id (tt0113277).
func (c *Client) LookupIMDB(ctx context.Context, imdbID string) (*Movie, error) {
	var m Movie
	q := url.Values{"imdbId": {imdbID}}
	if err := c.GetCached(ctx, "/movie/lookup/imdb", q, &m); err != nil {
		return nil, fmt.Errorf("lookup imdb %s: %w", imdbID, err)
	}
	return &m, nil
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
	body := map[string]any{"id": id, "blacklist": blacklist}
	if err := c.Delete(ctx, path, body, nil); err != nil {
		return fmt.Errorf("delete queue item %d: %w", id, err)
	}
	return nil
}
