// Package cmd provides the CLI commands for construction-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"construction-cost/internal/config"
	"construction-cost/internal/logging"
)

// Version is the CLI version
const Version = "1.0.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "construction-cost",
	Short: "Estimate construction materials and their cost",
	Long: `construction-cost estimates the materials a building needs and what they cost.

It computes concrete, brickwork and finishing quantities from the building
dimensions and prices them under the economy, standard and premium plans.

Examples:
  construction-cost estimate --input house.json
  construction-cost estimate --input house.json --all-plans --format xlsx --output boq.xlsx
  construction-cost rates show
  construction-cost config init`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.construction-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "construction-cost version %s\n", Version)
	},
}
