// Package cmd - config commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"construction-cost/internal/config"
	"construction-cost/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the CLI config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the active configuration to a file",
	Long: `Write the active configuration, defaults plus any environment overrides, as
JSON. The path defaults to --config or $HOME/.construction-cost.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configForce bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if err := writeConfig(path, config.Get(), configForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeConfig saves cfg to path, refusing to replace a file unless force is set
func writeConfig(path string, cfg *config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.InvalidInput("path", "%s already exists (use --force to overwrite)", path)
		}
	}
	if err := cfg.Save(path); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "failed to write %s", path)
	}
	return nil
}
