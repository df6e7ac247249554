package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/internal/match"
	"github.com/vmunix/hmwrap/pkg/radarr"
)

func newMoviesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "movies",
		Aliases: []string{"movie"},
		Short:   "Manage the Radarr movie collection",
	}

	cmd.AddCommand(
		newMoviesListCmd(opts),
		newMoviesLookupCmd(opts),
		newMoviesAddCmd(opts),
		newMoviesRemoveCmd(opts),
	)
	return cmd
}

func newMoviesListCmd(opts *globalOptions) *cobra.Command {
	var missing bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.radarrClient()
				if err != nil {
					return err
				}
				movies, err := c.Movies(cmd.Context())
				if err != nil {
					return err
				}
				if missing {
					kept := movies[:0]
					for _, m := range movies {
						if m.Monitored && !m.HasFile {
							kept = append(kept, m)
						}
					}
					movies = kept
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), movies)
				}
				printMovies(cmd.OutOrStdout(), movies)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&missing, "missing", false, "Only monitored movies without a file")
	return cmd
}

func newMoviesLookupCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <term>",
		Short: "Search for movies to add",
		Long: `Search for movies to add. The term may be a title,
"tmdb:<id>" or "imdb:<id>".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.radarrClient()
				if err != nil {
					return err
				}
				movies, err := c.Lookup(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), movies)
				}
				printMovies(cmd.OutOrStdout(), movies)
				return nil
			})
		},
	}
}

func newMoviesAddCmd(opts *globalOptions) *cobra.Command {
	var (
		year      int
		tmdbID    int
		profileID int
		root      string
		search    bool
		unmonitor bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a movie by title or TMDB id",
		Long: `Add a movie to Radarr.

With a title the best lookup result is picked by fuzzy matching; --year
narrows the choice. With --tmdb the exact movie is used.

Examples:
  hmwrap movies add "The Matrix" --year 1999
  hmwrap movies add --tmdb 603 --search`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && tmdbID == 0 {
				return fmt.Errorf("a title or --tmdb is required")
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				ctx := cmd.Context()
				c, err := a.radarrClient()
				if err != nil {
					return err
				}

				var found *radarr.Movie
				confidence := match.ConfidenceHigh
				if tmdbID > 0 {
					if found, err = c.LookupTMDB(ctx, tmdbID); err != nil {
						return err
					}
				} else {
					results, err := c.Lookup(ctx, args[0])
					if err != nil {
						return err
					}
					candidates := make([]match.Candidate, len(results))
					for i, m := range results {
						candidates[i] = match.Candidate{Title: m.Title, Year: m.Year}
					}
					best, err := pickBest(args[0], year, candidates)
					if err != nil {
						return err
					}
					found, confidence = &results[best.Index], best.Confidence
				}

				profile, err := resolveProfile(ctx, c.Client, profileID)
				if err != nil {
					return err
				}
				if root == "" {
					roots, err := c.RootFolders(ctx)
					if err != nil {
						return err
					}
					if len(roots) == 0 {
						return fmt.Errorf("radarr has no root folder configured")
					}
					root = roots[0].Path
				}

				monitored := !unmonitor
				added, err := c.AddMovie(ctx, radarr.AddMovieOptions{
					Title:            found.Title,
					QualityProfileID: profile,
					TitleSlug:        found.TitleSlug,
					TmdbID:           found.TmdbID,
					Year:             found.Year,
					RootFolderPath:   root,
					Images:           found.Images,
					Monitored:        &monitored,
					SearchForMovie:   &search,
				})
				if err != nil {
					return err
				}

				a.log.Info("movie added", "title", added.Title, "id", added.ID, "confidence", confidence.String())
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), added)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d) as #%d [match: %s]\n", added.Title, added.Year, added.ID, confidence)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&year, "year", 0, "Release year used to pick between lookup results")
	f.IntVar(&tmdbID, "tmdb", 0, "TMDB id (skips title matching)")
	f.IntVar(&profileID, "profile", 0, "Quality profile id (default: first profile)")
	f.StringVar(&root, "root", "", "Root folder path (default: first root folder)")
	f.BoolVar(&search, "search", false, "Search for the movie right away")
	f.BoolVar(&unmonitor, "unmonitored", false, "Add without monitoring")
	return cmd
}

func newMoviesRemoveCmd(opts *globalOptions) *cobra.Command {
	var dopts radarr.DeleteMovieOptions

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a movie from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.radarrClient()
				if err != nil {
					return err
				}
				if err := c.DeleteMovie(cmd.Context(), id, dopts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed movie #%d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dopts.DeleteFiles, "delete-files", false, "Also delete the movie folder and files")
	cmd.Flags().BoolVar(&dopts.AddExclusion, "exclude", false, "Add the movie to the import exclusion list")
	return cmd
}

func printMovies(w io.Writer, movies []radarr.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies.")
		return
	}
	for _, m := range movies {
		state := "missing"
		switch {
		case m.HasFile:
			state = humanize.IBytes(uint64(max(m.SizeOnDisk, 0)))
		case m.ID == 0:
			state = fmt.Sprintf("tmdb:%d", m.TmdbID)
		case !m.Monitored:
			state = "unmonitored"
		}
		fmt.Fprintf(w, "#%-5d %-40s %4d  %s\n", m.ID, m.Title, m.Year, state)
	}
}
