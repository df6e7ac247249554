package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/pkg/arr"
)

func newCommandCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "command <radarr|sonarr> <name> [key=value...]",
		Short: "Run a service command (refresh, search, rename...)",
		Long: `Queue a named command on Radarr or Sonarr.

Values that look like integers, booleans or comma-separated integer lists
are sent as such; everything else is sent as a string.

Examples:
  hmwrap command radarr RssSync
  hmwrap command radarr MoviesSearch movieIds=12,14
  hmwrap command sonarr SeasonSearch seriesId=3 seasonNumber=2
  hmwrap command sonarr DownloadedEpisodesScan path=/downloads/Show.S01E01`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(args[2:])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.service(args[0])
				if err != nil {
					return err
				}
				res, err := c.RunCommand(cmd.Context(), args[1], fields)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), res)
				}
				printCommands(cmd.OutOrStdout(), []arr.Command{*res})
				return nil
			})
		},
	}

	cmd.AddCommand(newCommandShowCmd(opts))
	return cmd
}

func newCommandShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <radarr|sonarr> [id]",
		Short: "Show queued and running commands, or one command by id",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				c, err := a.service(args[0])
				if err != nil {
					return err
				}

				var cmds []arr.Command
				if len(args) == 2 {
					id, err := parseID(args[1])
					if err != nil {
						return err
					}
					one, err := c.Command(cmd.Context(), id)
					if err != nil {
						return err
					}
					cmds = []arr.Command{*one}
				} else if cmds, err = c.Commands(cmd.Context()); err != nil {
					return err
				}

				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), cmds)
				}
				printCommands(cmd.OutOrStdout(), cmds)
				return nil
			})
		},
	}
}

// parseFields turns key=value arguments into command body fields.
func parseFields(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q (want key=value)", arg)
		}
		fields[key] = fieldValue(value)
	}
	return fields, nil
}

func fieldValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		ids := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return s
			}
			ids = append(ids, n)
		}
		return ids
	}
	return s
}

func printCommands(w io.Writer, cmds []arr.Command) {
	if len(cmds) == 0 {
		fmt.Fprintln(w, "No commands.")
		return
	}
	for _, c := range cmds {
		state := c.State
		if state == "" {
			state = c.Status
		}
		fmt.Fprintf(w, "#%-6d %-28s %s", c.ID, c.Name, state)
		if c.Message != "" {
			fmt.Fprintf(w, "  %s", c.Message)
		}
		fmt.Fprintln(w)
	}
}
