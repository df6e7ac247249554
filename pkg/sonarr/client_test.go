package sonarr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/hmwrap/pkg/arr"
	"github.com/vmunix/hmwrap/pkg/dates"
)

const testAPIKey = "sonarr-key"

// mockSonarr creates a test server keyed by "METHOD /path".
func mockSonarr(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if handler, ok := handlers[r.Method+" "+r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

func TestCalendar(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/calendar": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2021-05-03", r.URL.Query().Get("start"))
			assert.Equal(t, "2021-05-10T20:00:00", r.URL.Query().Get("end"))
			writeJSON(w, []Episode{{
				ID: 1, SeriesID: 2, SeasonNumber: 1, EpisodeNumber: 4, Title: "Pilot",
				Series: &Series{ID: 2, Title: "Severance"},
			}})
		},
	})

	c := New(srv.URL+"/api", testAPIKey)
	eps, err := c.Calendar(context.Background(),
		dates.Date(2021, time.May, 3),
		dates.DateTime(time.Date(2021, time.May, 10, 20, 0, 0, 0, time.UTC)))

	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, "Severance", eps[0].Series.Title)
}

func TestEpisodes(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/episode": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("seriesId"))
			writeJSON(w, []Episode{{ID: 1}, {ID: 2}})
		},
		"GET /api/episode/2": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, Episode{ID: 2, Title: "Half Loop", Monitored: true})
		},
		"PUT /api/episode": func(w http.ResponseWriter, r *http.Request) {
			var ep Episode
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ep))
			assert.Equal(t, 2, ep.ID)
			assert.False(t, ep.Monitored)
			writeJSON(w, ep)
		},
	})

	c := New(srv.URL, testAPIKey)
	ctx := context.Background()

	eps, err := c.Episodes(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, eps, 2)

	ep, err := c.Episode(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Half Loop", ep.Title)

	ep.Monitored = false
	updated, err := c.UpdateEpisode(ctx, ep)
	require.NoError(t, err)
	assert.False(t, updated.Monitored)

	_, err = c.UpdateEpisode(ctx, &Episode{})
	assert.ErrorIs(t, err, ErrInvalidSeries)
}

func TestEpisodeFiles(t *testing.T) {
	deleted := false
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/episodefile": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("seriesId"))
			writeJSON(w, []EpisodeFile{{ID: 8, RelativePath: "Season 1/S01E01.mkv"}})
		},
		"GET /api/episodefile/8": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, EpisodeFile{ID: 8, Size: 1 << 30})
		},
		"DELETE /api/episodefile/8": func(w http.ResponseWriter, _ *http.Request) {
			deleted = true
			w.WriteHeader(http.StatusOK)
		},
	})

	c := New(srv.URL, testAPIKey)
	ctx := context.Background()

	files, err := c.EpisodeFiles(ctx, 2)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Season 1/S01E01.mkv", files[0].RelativePath)

	f, err := c.EpisodeFile(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<30), f.Size)

	require.NoError(t, c.DeleteEpisodeFile(ctx, 8))
	assert.True(t, deleted)
}

func TestWantedMissing(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/wanted/missing": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "1", q.Get("page"))
			assert.Equal(t, "10", q.Get("pageSize"))
			assert.Equal(t, "airDateUtc", q.Get("sortKey"))
			assert.Equal(t, "desc", q.Get("sortDir"))
			writeJSON(w, WantedPage{Page: 1, TotalRecords: 1, Records: []Episode{{ID: 4}}})
		},
	})

	c := New(srv.URL, testAPIKey)
	wp, err := c.WantedMissing(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, wp.TotalRecords)
	assert.Len(t, wp.Records, 1)
}

func TestQueue(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/queue": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []map[string]any{{
				"id":      1,
				"title":   "Severance.S01E01.1080p",
				"status":  "Queued",
				"series":  map[string]any{"title": "Severance"},
				"episode": map[string]any{"seasonNumber": 1, "episodeNumber": 1},
			}})
		},
		"DELETE /api/queue/1": func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			w.WriteHeader(http.StatusOK)
		},
	})

	c := New(srv.URL, testAPIKey)
	items, err := c.Queue(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Severance", items[0].Series.Title)
	assert.Equal(t, 1, items[0].Episode.EpisodeNumber)

	require.NoError(t, c.DeleteQueueItem(context.Background(), 1, false))
}

func TestSeriesCRUD(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/series": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []Series{{ID: 1, Title: "Severance"}})
		},
		"GET /api/series/1": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, Series{ID: 1, Title: "Severance", TvdbID: 371980})
		},
		"PUT /api/series": func(w http.ResponseWriter, r *http.Request) {
			var s Series
			require.NoError(t, json.NewDecoder(r.Body).Decode(&s))
			assert.True(t, s.Monitored)
			writeJSON(w, s)
		},
		"DELETE /api/series/1": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("deleteFiles"))
			var body map[string]bool
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.True(t, body["deleteFiles"])
			w.WriteHeader(http.StatusOK)
		},
	})

	c := New(srv.URL, testAPIKey)
	ctx := context.Background()

	all, err := c.Series(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	s, err := c.SeriesByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 371980, s.TvdbID)

	s.Monitored = true
	_, err = c.UpdateSeries(ctx, s)
	require.NoError(t, err)

	_, err = c.UpdateSeries(ctx, &Series{})
	assert.ErrorIs(t, err, ErrInvalidSeries)

	require.NoError(t, c.DeleteSeries(ctx, 1, true))

	_, err = c.SeriesByID(ctx, 2)
	assert.ErrorIs(t, err, arr.ErrNotFound)
}

func TestBuildSeries(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/series/lookup": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tvdb:371980", r.URL.Query().Get("term"))
			writeJSON(w, []Series{{
				Title:     "Severance",
				TitleSlug: "severance",
				TvdbID:    371980,
				Seasons:   []Season{{SeasonNumber: 1, Monitored: true}},
				Images:    []arr.Image{{CoverType: "poster", URL: "/poster.jpg"}},
			}})
		},
		"GET /api/rootfolder": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []arr.RootFolder{{ID: 1, Path: "/tv/"}})
		},
		"POST /api/series": func(w http.ResponseWriter, r *http.Request) {
			var req AddSeriesRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "/tv/Severance", req.Path)
			writeJSON(w, Series{ID: 9, Title: req.Title})
		},
	})

	c := New(srv.URL, testAPIKey)
	ctx := context.Background()

	req, err := c.BuildSeries(ctx, 371980, 3)
	require.NoError(t, err)
	assert.Equal(t, "Severance", req.Title)
	assert.Equal(t, "severance", req.TitleSlug)
	assert.Equal(t, 3, req.QualityProfileID)
	assert.True(t, req.SeasonFolder)
	assert.True(t, req.Monitored)
	require.NotNil(t, req.AddOptions)
	assert.True(t, req.AddOptions.IgnoreEpisodesWithFiles)
	assert.True(t, req.AddOptions.IgnoreEpisodesWithoutFiles)
	assert.Len(t, req.Seasons, 1)
	assert.Len(t, req.Images, 1)

	s, err := c.AddSeries(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 9, s.ID)
}

func TestBuildSeries_NotFound(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/series/lookup": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []Series{})
		},
	})

	c := New(srv.URL, testAPIKey)
	_, err := c.BuildSeries(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestBuildSeries_NoRootFolder(t *testing.T) {
	srv := mockSonarr(t, map[string]http.HandlerFunc{
		"GET /api/series/lookup": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []Series{{Title: "Severance"}})
		},
		"GET /api/rootfolder": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []arr.RootFolder{})
		},
	})

	c := New(srv.URL, testAPIKey)
	_, err := c.BuildSeries(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrNoRootFolder)
}

func TestAddSeries_Validation(t *testing.T) {
	c := New("http://127.0.0.1:1", testAPIKey)
	_, err := c.AddSeries(context.Background(), &AddSeriesRequest{Title: "x", TvdbID: 1, QualityProfileID: 1})
	assert.ErrorIs(t, err, ErrInvalidSeries)

	_, err = c.AddSeries(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidSeries)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/tv/Severance", joinPath("/tv", "Severance"))
	assert.Equal(t, "/tv/Severance", joinPath("/tv/", "Severance"))
	assert.Equal(t, `D:\TV\Severance`, joinPath(`D:\TV\`, "Severance"))
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Client) (*arr.Command, error)
		want map[string]any
	}{
		{"refresh all", func(c *Client) (*arr.Command, error) { return c.RefreshSeries(context.Background(), 0) },
			map[string]any{"name": CommandRefreshSeries}},
		{"rescan", func(c *Client) (*arr.Command, error) { return c.RescanSeries(context.Background(), 2) },
			map[string]any{"name": CommandRescanSeries, "seriesId": float64(2)}},
		{"episode search", func(c *Client) (*arr.Command, error) { return c.EpisodeSearch(context.Background(), 5, 6) },
			map[string]any{"name": CommandEpisodeSearch, "episodeIds": []any{float64(5), float64(6)}}},
		{"season search", func(c *Client) (*arr.Command, error) { return c.SeasonSearch(context.Background(), 2, 0) },
			map[string]any{"name": CommandSeasonSearch, "seriesId": float64(2), "seasonNumber": float64(0)}},
		{"series search", func(c *Client) (*arr.Command, error) { return c.SeriesSearch(context.Background(), 2) },
			map[string]any{"name": CommandSeriesSearch, "seriesId": float64(2)}},
		{"downloaded scan", func(c *Client) (*arr.Command, error) {
			return c.DownloadedEpisodesScan(context.Background(), arr.ScanOptions{Path: "/dl/x", DownloadClientID: "SABnzbd_nzo_1"})
		}, map[string]any{"name": CommandDownloadedEpisodesScan, "path": "/dl/x", "downloadClientId": "SABnzbd_nzo_1"}},
		{"rss", func(c *Client) (*arr.Command, error) { return c.RssSync(context.Background()) },
			map[string]any{"name": CommandRssSync}},
		{"rename files", func(c *Client) (*arr.Command, error) { return c.RenameFiles(context.Background(), 1) },
			map[string]any{"name": CommandRenameFiles, "files": []any{float64(1)}}},
		{"rename series", func(c *Client) (*arr.Command, error) { return c.RenameSeries(context.Background(), 2) },
			map[string]any{"name": CommandRenameSeries, "seriesIds": []any{float64(2)}}},
		{"backup", func(c *Client) (*arr.Command, error) { return c.Backup(context.Background()) },
			map[string]any{"name": CommandBackup}},
		{"missing", func(c *Client) (*arr.Command, error) { return c.MissingEpisodeSearch(context.Background()) },
			map[string]any{"name": CommandMissingEpisodeSearch}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := mockSonarr(t, map[string]http.HandlerFunc{
				"POST /api/command": func(w http.ResponseWriter, r *http.Request) {
					var body map[string]any
					require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
					assert.Equal(t, tt.want, body)
					writeJSON(w, arr.Command{ID: 3, Name: tt.want["name"].(string)})
				},
			})

			cmd, err := tt.run(New(srv.URL, testAPIKey))
			require.NoError(t, err)
			assert.Equal(t, 3, cmd.ID)
		})
	}
}
