package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tabular-hq/ganymede/pkg/config"
	"tabular-hq/ganymede/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ganymede",
	Short: "Ganymede - declarative validation for tabular datasets",
	Long: `Ganymede validates the shape and content of tabular datasets against
declarative schemas: required and optional columns, per-column dtypes,
nullability, uniqueness, composite uniqueness, value checks, row-count
bounds and strict column sets.

Schemas are YAML documents; tables come from CSV files or SQLite
databases. Validation outcomes can be recorded to a report database for
audit.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			config.SetFilePath(cfgFile)
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(logging.Config{Level: level, Format: "text"})
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "project config file (default ganymede.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
