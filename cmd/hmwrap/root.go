package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	jsonOutput bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "hmwrap",
		Short: "Command-line client for Radarr and Sonarr",
		Long: `hmwrap - command-line client for Radarr and Sonarr

Talks to the v3 APIs of both services with the keys from config.toml.
Dates given on the command line accept ISO (2020-01-27), US (01/27/2020),
European (27-01-2020) and two-digit-year (1/27/20) forms.

Run 'hmwrap init' to write an example config.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: discovered)")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	pf.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	cmd.Version = version
	cmd.SetVersionTemplate("hmwrap {{.Version}}\n")

	cmd.AddCommand(
		newInitCmd(opts),
		newDateCmd(opts),
		newCalendarCmd(opts),
		newQueueCmd(opts),
		newHistoryCmd(opts),
		newStatusCmd(opts),
		newDiskCmd(opts),
		newMoviesCmd(opts),
		newSeriesCmd(opts),
		newCommandCmd(opts),
		newPushCmd(opts),
	)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
