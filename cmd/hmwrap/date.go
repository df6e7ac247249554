package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/dates"
)

// dateResult is the JSON form of the date command.
type dateResult struct {
	Input      string   `json:"input"`
	Normalized string   `json:"normalized,omitempty"`
	Format     string   `json:"format,omitempty"`
	Layout     string   `json:"layout,omitempty"`
	Tried      []string `json:"tried,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func newDateCmd(opts *globalOptions) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "date <text>",
		Short: "Normalize a date the way API requests do (local, no server needed)",
		Long: `Normalize a free-form date to the ISO-8601 form sent to Radarr and Sonarr.

Formats are tried in order: month-day-year, day-month-year, year-month-day,
each with "-" then "/" and a two-digit year before a four-digit one.
The first that yields a valid date wins.

Examples:
  hmwrap date 01/27/2020         # 2020-01-27T00:00:00
  hmwrap date 1/27/20            # same
  hmwrap date 25-12-2020 --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDate(cmd.OutOrStdout(), opts, args[0], explain)
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "List the candidate formats tried")
	return cmd
}

func runDate(w io.Writer, opts *globalOptions, text string, explain bool) error {
	res := dateResult{Input: text}

	t, f, err := dates.Match(text)
	if err == nil {
		res.Normalized, err = dates.Normalize(dates.DateTime(t))
	}
	if err == nil {
		res.Format, res.Layout = describeFormat(f)
	} else {
		res.Error = err.Error()
	}

	if explain {
		for _, c := range dates.Candidates() {
			res.Tried = append(res.Tried, c.String())
			if err == nil && c == f {
				break
			}
		}
		if err == nil && f.Separator == "" {
			res.Tried = append(res.Tried, "canonical")
		}
	}

	if opts.jsonOutput {
		if perr := printJSON(w, res); perr != nil {
			return perr
		}
		return err
	}

	if explain {
		printAttempts(w, res.Tried, err == nil)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, res.Normalized)
	return nil
}

func describeFormat(f dates.Format) (name, layout string) {
	if f.Separator == "" {
		return "canonical", time.DateOnly + "T" + time.TimeOnly
	}
	return f.String(), f.Layout()
}

func printAttempts(w io.Writer, tried []string, matched bool) {
	for i, name := range tried {
		mark := "no"
		if matched && i == len(tried)-1 {
			mark = "ok"
		}
		fmt.Fprintf(w, "  %-2s %s\n", mark, name)
	}
}
