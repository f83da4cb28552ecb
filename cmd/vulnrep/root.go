package main

import (
	"errors"
	"fmt"

	"github.com/mkarimov/vulnrep/internal/config"
	"github.com/mkarimov/vulnrep/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vulnrep",
	Short: "Professional PDF reports from nuclei scan results",
	Long: `Vulnrep turns nuclei JSONL output into styled PDF reports.

It parses newline-delimited findings with per-line fault isolation,
deduplicates repeated observations, filters by severity, and renders
a document with severity charts, per-severity finding sections, and
the most critical findings across the whole scan.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		skipConfig := map[string]bool{
			"init":    true,
			"help":    true,
			"version": true,
		}

		if err := logging.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		if skipConfig[cmd.Name()] {
			return nil
		}

		// Load config when present; otherwise fall back to defaults so
		// the tool works without an init step.
		loaded, err := config.Load(cfgFile)
		if err != nil {
			if errors.Is(err, config.ErrNotFound) {
				cfg = config.DefaultConfig()
				return nil
			}
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: vulnrep.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Version flag
	rootCmd.Version = "0.1.0-dev"
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
