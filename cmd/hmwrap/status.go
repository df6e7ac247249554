package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/arr"
	"golang.org/x/sync/errgroup"
)

// serviceStatus is the health of one configured service.
type serviceStatus struct {
	Service string            `json:"service"`
	URL     string            `json:"url"`
	Status  *arr.SystemStatus `json:"status,omitempty"`
	Error   string            `json:"error,omitempty"`

	err error
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check every configured service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				statuses := fetchStatuses(cmd.Context(), a.services())

				if opts.jsonOutput {
					if err := printJSON(cmd.OutOrStdout(), statuses); err != nil {
						return err
					}
				} else {
					printStatuses(cmd.OutOrStdout(), statuses)
				}

				var errs []error
				for _, s := range statuses {
					if s.err != nil {
						errs = append(errs, fmt.Errorf("%s: %w", s.Service, s.err))
					}
				}
				return errors.Join(errs...)
			})
		},
	}
}

// fetchStatuses queries every service concurrently. A failing service does
// not stop the others.
func fetchStatuses(ctx context.Context, clients []*arr.Client) []serviceStatus {
	statuses := make([]serviceStatus, len(clients))

	var g errgroup.Group
	for i, c := range clients {
		i, c := i, c
		statuses[i] = serviceStatus{Service: c.Service(), URL: c.BaseURL()}
		g.Go(func() error {
			st, err := c.SystemStatus(ctx)
			if err != nil {
				statuses[i].err = err
				statuses[i].Error = err.Error()
				return nil
			}
			statuses[i].Status = st
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

func printStatuses(w io.Writer, statuses []serviceStatus) {
	for _, s := range statuses {
		if s.err != nil {
			fmt.Fprintf(w, "%-6s  %-32s  FAIL %s\n", s.Service, s.URL, s.Error)
			continue
		}
		fmt.Fprintf(w, "%-6s  %-32s  ok   v%s (%s %s)\n",
			s.Service, s.URL, s.Status.Version, s.Status.OsName, s.Status.OsVersion)
	}
}
