package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/arr"
	"github.com/vmunix/hmwrap/pkg/dates"
)

func newPushCmd(opts *globalOptions) *cobra.Command {
	var (
		protocol  string
		published string
	)

	cmd := &cobra.Command{
		Use:   "push <radarr|sonarr> <title> <download-url>",
		Short: "Offer a release found elsewhere to a service",
		Long: `Push a release to Radarr or Sonarr, which decides whether to grab it.

Examples:
  hmwrap push radarr "Dune.2021.1080p.BluRay.x264-GRP" https://indexer/get/123
  hmwrap push sonarr "Show.S01E01.720p" magnet:?xt=... --protocol torrent --published 3/14/24`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if protocol != "usenet" && protocol != "torrent" {
				return fmt.Errorf("invalid --protocol %q (want usenet or torrent)", protocol)
			}
			pub := dates.DateTime(time.Now().UTC().Truncate(time.Second))
			if strings.TrimSpace(published) != "" {
				pub = dates.Text(published)
			}

			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.service(args[0])
				if err != nil {
					return err
				}
				decisions, err := c.PushRelease(cmd.Context(), args[1], args[2], protocol, pub)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), decisions)
				}
				printDecisions(cmd.OutOrStdout(), decisions)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&protocol, "protocol", "usenet", "Release protocol (usenet or torrent)")
	cmd.Flags().StringVar(&published, "published", "", "Publish date (default: now)")
	return cmd
}

func printDecisions(w io.Writer, decisions []arr.ReleaseDecision) {
	if len(decisions) == 0 {
		fmt.Fprintln(w, "Release pushed.")
		return
	}
	for _, d := range decisions {
		if d.Approved && !d.Rejected {
			fmt.Fprintf(w, "approved  %s\n", d.Title)
			continue
		}
		fmt.Fprintf(w, "rejected  %s\n", d.Title)
		for _, r := range d.Rejections {
			fmt.Fprintf(w, "          - %s\n", r)
		}
	}
}
