package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/arr"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var hopts arr.HistoryOptions

	cmd := &cobra.Command{
		Use:   "history <radarr|sonarr>",
		Short: "Show grab, import and failure history",
		Long: `Show grab, import and failure history of one service.

Examples:
  hmwrap history radarr
  hmwrap history sonarr --page 2 --page-size 50 --sort-key date --sort-dir desc`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"radarr", "sonarr"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if hopts.SortDir != "" && hopts.SortDir != "asc" && hopts.SortDir != "desc" {
				return fmt.Errorf("invalid --sort-dir %q (want asc or desc)", hopts.SortDir)
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.service(args[0])
				if err != nil {
					return err
				}
				page, err := c.History(cmd.Context(), hopts)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), page)
				}
				printHistory(cmd.OutOrStdout(), page)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&hopts.Page, "page", 1, "Page number (1-indexed)")
	f.IntVar(&hopts.PageSize, "page-size", 10, "Records per page")
	f.StringVar(&hopts.SortKey, "sort-key", "date", "Field to sort by")
	f.StringVar(&hopts.SortDir, "sort-dir", "desc", "Sort direction (asc or desc)")
	return cmd
}

func printHistory(w io.Writer, page *arr.HistoryPage) {
	if len(page.Records) == 0 {
		fmt.Fprintln(w, "No history.")
		return
	}
	for _, r := range page.Records {
		day := r.Date
		if len(day) > 16 {
			day = day[:16]
		}
		fmt.Fprintf(w, "%-16s  %-24s  %s\n", day, r.EventType, r.SourceTitle)
	}
	fmt.Fprintf(w, "\nPage %d, %d of %d records\n", page.Page, len(page.Records), page.TotalRecords)
}
