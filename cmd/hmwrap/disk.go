package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/arr"
)

func newDiskCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disk [radarr|sonarr]",
		Short: "Show free disk space as seen by a service",
		Long: `Show free disk space of the volumes a service can see.

Without an argument the first configured service is asked.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"radarr", "sonarr"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				var c *arr.Client
				if len(args) == 1 {
					var err error
					if c, err = a.service(args[0]); err != nil {
						return err
					}
				} else {
					c = a.services()[0]
				}

				disks, err := c.DiskSpace(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), disks)
				}
				printDisks(cmd.OutOrStdout(), disks)
				return nil
			})
		},
	}
}

func printDisks(w io.Writer, disks []arr.DiskSpace) {
	for _, d := range disks {
		var used float64
		if d.TotalSpace > 0 {
			used = float64(d.TotalSpace-d.FreeSpace) / float64(d.TotalSpace) * 100
		}
		fmt.Fprintf(w, "%-24s  %9s free of %-9s  (%.0f%% used)\n",
			d.Path, humanize.IBytes(uint64(max(d.FreeSpace, 0))), humanize.IBytes(uint64(max(d.TotalSpace, 0))), used)
	}
}
