package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/internal/match"
	"github.com/vmunix/hmwrap/pkg/sonarr"
)

func newSeriesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "series",
		Aliases: []string{"shows"},
		Short:   "Manage the Sonarr series collection",
	}

	cmd.AddCommand(
		newSeriesListCmd(opts),
		newSeriesLookupCmd(opts),
		newSeriesAddCmd(opts),
		newSeriesRemoveCmd(opts),
	)
	return cmd
}

func newSeriesListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List series in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.sonarrClient()
				if err != nil {
					return err
				}
				series, err := c.Series(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), series)
				}
				printSeries(cmd.OutOrStdout(), series)
				return nil
			})
		},
	}
}

func newSeriesLookupCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <term>",
		Short: `Search for series to add (title or "tvdb:<id>")`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.sonarrClient()
				if err != nil {
					return err
				}
				series, err := c.Lookup(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), series)
				}
				printSeries(cmd.OutOrStdout(), series)
				return nil
			})
		},
	}
}

func newSeriesAddCmd(opts *globalOptions) *cobra.Command {
	var (
		year      int
		tvdbID    int
		profileID int
		search    bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a series by title or TVDB id",
		Long: `Add a series to Sonarr in the first root folder, monitored,
with season folders.

Examples:
  hmwrap series add "Severance"
  hmwrap series add --tvdb 371980 --profile 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && tvdbID == 0 {
				return fmt.Errorf("a title or --tvdb is required")
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				ctx := cmd.Context()
				c, err := a.sonarrClient()
				if err != nil {
					return err
				}

				confidence := match.ConfidenceHigh
				if tvdbID == 0 {
					results, err := c.Lookup(ctx, args[0])
					if err != nil {
						return err
					}
					candidates := make([]match.Candidate, len(results))
					for i, s := range results {
						candidates[i] = match.Candidate{Title: s.Title, Year: s.Year}
					}
					best, err := pickBest(args[0], year, candidates)
					if err != nil {
						return err
					}
					tvdbID, confidence = results[best.Index].TvdbID, best.Confidence
				}

				profile, err := resolveProfile(ctx, c.Client, profileID)
				if err != nil {
					return err
				}
				req, err := c.BuildSeries(ctx, tvdbID, profile)
				if err != nil {
					return err
				}
				if search {
					req.AddOptions.SearchForMissingEpisodes = true
				}

				added, err := c.AddSeries(ctx, req)
				if err != nil {
					return err
				}

				a.log.Info("series added", "title", added.Title, "id", added.ID, "confidence", confidence.String())
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), added)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s as #%d in %s [match: %s]\n", added.Title, added.ID, req.Path, confidence)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&year, "year", 0, "First-aired year used to pick between lookup results")
	f.IntVar(&tvdbID, "tvdb", 0, "TVDB id (skips title matching)")
	f.IntVar(&profileID, "profile", 0, "Quality profile id (default: first profile)")
	f.BoolVar(&search, "search", false, "Search for missing episodes right away")
	return cmd
}

func newSeriesRemoveCmd(opts *globalOptions) *cobra.Command {
	var deleteFiles bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a series from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.sonarrClient()
				if err != nil {
					return err
				}
				if err := c.DeleteSeries(cmd.Context(), id, deleteFiles); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed series #%d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&deleteFiles, "delete-files", false, "Also delete the series folder and files")
	return cmd
}

func printSeries(w io.Writer, series []sonarr.Series) {
	if len(series) == 0 {
		fmt.Fprintln(w, "No series.")
		return
	}
	for _, s := range series {
		detail := fmt.Sprintf("%d seasons", s.SeasonCount)
		if s.ID == 0 {
			detail = fmt.Sprintf("tvdb:%d", s.TvdbID)
		} else if s.EpisodeCount > 0 {
			detail += fmt.Sprintf(", %d/%d episodes", s.EpisodeFileCount, s.EpisodeCount)
		}
		fmt.Fprintf(w, "#%-5d %-40s %4d  %s\n", s.ID, s.Title, s.Year, detail)
	}
}
