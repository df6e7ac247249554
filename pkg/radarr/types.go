// Package radarr provides a client for the Radarr movie-collection API.
package radarr

import "github.com/vmunix/hmwrap/pkg/arr"

// Movie is a movie in the collection or a lookup result.
type Movie struct {
	ID                  int         `json:"id,omitempty"`
	Title               string      `json:"title"`
	SortTitle           string      `json:"sortTitle,omitempty"`
	TitleSlug           string      `json:"titleSlug,omitempty"`
	Year                int         `json:"year"`
	Overview            string      `json:"overview,omitempty"`
	Status              string      `json:"status,omitempty"` // announced, inCinemas, released
	InCinemas           string      `json:"inCinemas,omitempty"`
	PhysicalRelease     string      `json:"physicalRelease,omitempty"`
	Path                string      `json:"path,omitempty"`
	RootFolderPath      string      `json:"rootFolderPath,omitempty"`
	QualityProfileID    int         `json:"qualityProfileId,omitempty"`
	Monitored           bool        `json:"monitored"`
	HasFile             bool        `json:"hasFile"`
	Downloaded          bool        `json:"downloaded,omitempty"`
	IsAvailable         bool        `json:"isAvailable,omitempty"`
	MinimumAvailability string      `json:"minimumAvailability,omitempty"`
	TmdbID              int         `json:"tmdbId"`
	ImdbID              string      `json:"imdbId,omitempty"`
	Runtime             int         `json:"runtime,omitempty"`
	SizeOnDisk          int64       `json:"sizeOnDisk,omitempty"`
	Images              []arr.Image `json:"images,omitempty"`
	Added               string      `json:"added,omitempty"`
}

// AddMovieOptions are the fields needed to add a movie. Title, profile,
// slug, TMDB id, year and path are all required for Radarr to handle the
// movie properly.
type AddMovieOptions struct {
	Title            string
	QualityProfileID int
	TitleSlug        string
	TmdbID           int
	Year             int
	// Path is the full movie path. When RootFolderPath is set instead, Radarr
	// builds the path from the root folder and the title.
	Path           string
	RootFolderPath string
	Images         []arr.Image
	Monitored      *bool
	SearchForMovie *bool
}

type addMovieRequest struct {
	Title            string           `json:"title"`
	QualityProfileID int              `json:"qualityProfileId"`
	TitleSlug        string           `json:"titleSlug"`
	TmdbID           int              `json:"tmdbId"`
	Year             int              `json:"year"`
	Path             string           `json:"path,omitempty"`
	RootFolderPath   string           `json:"rootFolderPath,omitempty"`
	Images           []arr.Image      `json:"images,omitempty"`
	Monitored        *bool            `json:"monitored,omitempty"`
	AddOptions       *movieAddOptions `json:"addOptions,omitempty"`
}

type movieAddOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

// DeleteMovieOptions control what happens besides removing the movie.
type DeleteMovieOptions struct {
	DeleteFiles  bool // remove the movie folder and files
	AddExclusion bool // add the TMDB id to the import exclusion list
}

// QueueItem is a Radarr download queue entry.
type QueueItem struct {
	arr.QueueItem
	Movie *Movie `json:"movie,omitempty"`
}
