// =============================================================================
// CSV to CAD Table - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cadtable)
//   ├── insertCmd  (cadtable insert)
//   ├── inspectCmd (cadtable inspect)
//   └── versionCmd (cadtable version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledat/csv-to-cad-table/internal/config"
	"github.com/ledat/csv-to-cad-table/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file. Empty means defaults.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// appConfig and logger are set up in PersistentPreRunE.
var (
	appConfig *config.Config
	logger    *logrus.Logger
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cadtable",
	Short: "CSV to CAD Table - Turn a CSV file into a drawing table",
	Long: `cadtable reads a CSV (or XLSX) file and creates a table from it: a merged
title row, a header row with an index column, and one row per record.

The table is written to a sink:
  - xlsx    : an Excel workbook
  - dxf     : an AutoCAD DXF drawing
  - preview : a text table on the terminal

Example Usage:
  cadtable inspect --file points.csv
  cadtable insert --file points.csv --title "Coordinates" --column X --column Y
  cadtable insert --file points.csv --sink dxf --x 100 --y 200`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (defaults are used when empty)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the configuration and builds the logger.
func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	log, err := logging.New(level, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = log
	logger.WithField("config", cfgFile).Debug("Configuration loaded")

	return nil
}
