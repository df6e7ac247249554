package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/dates"
	"github.com/vmunix/hmwrap/pkg/radarr"
	"github.com/vmunix/hmwrap/pkg/sonarr"
	"golang.org/x/sync/errgroup"
)

// calendarEntry is one upcoming movie release or episode airing.
type calendarEntry struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
}

func newCalendarCmd(opts *globalOptions) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Upcoming movies and episodes from every configured service",
		Long: `Show upcoming movie releases and episode airings.

Without --start/--end each service uses its own default window.

Examples:
  hmwrap calendar
  hmwrap calendar --start 2024-03-01 --end 03/31/2024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				entries, err := fetchCalendar(cmd.Context(), a, optionalDate(start), optionalDate(end))
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				printCalendar(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day (any supported date form)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (any supported date form)")
	return cmd
}

// optionalDate maps an empty flag to the zero Input, which omits the parameter.
func optionalDate(s string) dates.Input {
	if strings.TrimSpace(s) == "" {
		return dates.Input{}
	}
	return dates.Text(s)
}

func fetchCalendar(ctx context.Context, a *app, start, end dates.Input) ([]calendarEntry, error) {
	var movies []radarr.Movie
	var episodes []sonarr.Episode

	g, ctx := errgroup.WithContext(ctx)
	if a.radarr != nil {
		g.Go(func() error {
			var err error
			movies, err = a.radarr.Calendar(ctx, start, end)
			if err != nil {
				return fmt.Errorf("radarr: %w", err)
			}
			return nil
		})
	}
	if a.sonarr != nil {
		g.Go(func() error {
			var err error
			episodes, err = a.sonarr.Calendar(ctx, start, end)
			if err != nil {
				return fmt.Errorf("sonarr: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]calendarEntry, 0, len(movies)+len(episodes))
	for _, m := range movies {
		date := m.PhysicalRelease
		detail := "physical release"
		if date == "" {
			date, detail = m.InCinemas, "in cinemas"
		}
		entries = append(entries, calendarEntry{
			Service: "radarr",
			Date:    date,
			Title:   fmt.Sprintf("%s (%d)", m.Title, m.Year),
			Detail:  detail,
		})
	}
	for _, ep := range episodes {
		title := fmt.Sprintf("series %d", ep.SeriesID)
		if ep.Series != nil {
			title = ep.Series.Title
		}
		date := ep.AirDateUtc
		if date == "" {
			date = ep.AirDate
		}
		entries = append(entries, calendarEntry{
			Service: "sonarr",
			Date:    date,
			Title:   title,
			Detail:  fmt.Sprintf("S%02dE%02d %s", ep.SeasonNumber, ep.EpisodeNumber, ep.Title),
		})
	}

	slices.SortStableFunc(entries, func(x, y calendarEntry) int {
		return strings.Compare(x.Date, y.Date)
	})
	return entries, nil
}

func printCalendar(w io.Writer, entries []calendarEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Nothing scheduled.")
		return
	}
	for _, e := range entries {
		day := e.Date
		if len(day) > 10 {
			day = day[:10]
		}
		fmt.Fprintf(w, "%-10s  %-6s  %s  %s\n", day, e.Service, e.Title, e.Detail)
	}
}
