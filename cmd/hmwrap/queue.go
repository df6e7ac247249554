package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/arr"
	"github.com/vmunix/hmwrap/pkg/radarr"
	"github.com/vmunix/hmwrap/pkg/sonarr"
	"golang.org/x/sync/errgroup"
)

// queueEntry is a download queue item from either service.
type queueEntry struct {
	Service  string  `json:"service"`
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Size     float64 `json:"size"`
	TimeLeft string  `json:"timeleft,omitempty"`
	Protocol string  `json:"protocol,omitempty"`
	For      string  `json:"for,omitempty"`
}

func newQueueCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show active downloads of every configured service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				entries, err := fetchQueue(cmd.Context(), a)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				printQueue(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.AddCommand(newQueueRemoveCmd(opts))
	return cmd
}

func newQueueRemoveCmd(opts *globalOptions) *cobra.Command {
	var blacklist bool

	cmd := &cobra.Command{
		Use:   "rm <radarr|sonarr> <id>",
		Short: "Remove a queue item from the service and its download client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				q, err := a.queue(args[0])
				if err != nil {
					return err
				}
				if err := q.DeleteQueueItem(cmd.Context(), id, blacklist); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s queue item %d\n", args[0], id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&blacklist, "blacklist", false, "Blacklist the release so it is not grabbed again")
	return cmd
}

type queueRemover interface {
	DeleteQueueItem(ctx context.Context, id int, blacklist bool) error
}

func (a *app) queue(service string) (queueRemover, error) {
	switch service {
	case "radarr":
		return a.radarrClient()
	case "sonarr":
		return a.sonarrClient()
	default:
		return nil, fmt.Errorf("unknown service %q (want radarr or sonarr)", service)
	}
}

func fetchQueue(ctx context.Context, a *app) ([]queueEntry, error) {
	var movies []radarr.QueueItem
	var episodes []sonarr.QueueItem

	g, ctx := errgroup.WithContext(ctx)
	if a.radarr != nil {
		g.Go(func() error {
			var err error
			if movies, err = a.radarr.Queue(ctx); err != nil {
				return fmt.Errorf("radarr: %w", err)
			}
			return nil
		})
	}
	if a.sonarr != nil {
		g.Go(func() error {
			var err error
			if episodes, err = a.sonarr.Queue(ctx); err != nil {
				return fmt.Errorf("sonarr: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]queueEntry, 0, len(movies)+len(episodes))
	for _, item := range movies {
		var target string
		if item.Movie != nil {
			target = fmt.Sprintf("%s (%d)", item.Movie.Title, item.Movie.Year)
		}
		entries = append(entries, newQueueEntry("radarr", item.QueueItem, target))
	}
	for _, item := range episodes {
		var target string
		if item.Series != nil {
			target = item.Series.Title
		}
		if item.Episode != nil {
			target += fmt.Sprintf(" S%02dE%02d", item.Episode.SeasonNumber, item.Episode.EpisodeNumber)
		}
		entries = append(entries, newQueueEntry("sonarr", item.QueueItem, target))
	}
	return entries, nil
}

func newQueueEntry(service string, item arr.QueueItem, target string) queueEntry {
	return queueEntry{
		Service:  service,
		ID:       item.ID,
		Title:    item.Title,
		Status:   item.Status,
		Progress: item.Progress(),
		Size:     item.Size,
		TimeLeft: item.TimeLeft,
		Protocol: item.Protocol,
		For:      target,
	}
}

func printQueue(w io.Writer, entries []queueEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Queue is empty.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-6s #%-5d %-11s %5.1f%% of %-9s %s\n",
			e.Service, e.ID, e.Status, e.Progress*100, humanize.IBytes(uint64(e.Size)), e.Title)
		if e.For != "" {
			fmt.Fprintf(w, "        for %s", e.For)
			if e.TimeLeft != "" {
				fmt.Fprintf(w, ", %s left", e.TimeLeft)
			}
			fmt.Fprintln(w)
		}
	}
}
