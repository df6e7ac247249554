package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/hmwrap/internal/config"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		Long: `Write an example config.toml.

The file goes to --config when given, otherwise to
$XDG_CONFIG_HOME/hmwrap/config.toml. API keys default to the
RADARR_API_KEY and SONARR_API_KEY environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{"path": path})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Set RADARR_API_KEY and SONARR_API_KEY (or edit the file) before use.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}
