// =============================================================================
// Point Description Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (descparse)
//   ├── processCmd    (descparse process)
//   ├── preprocessCmd (descparse preprocess)
//   ├── classifyCmd   (descparse classify)
//   ├── validateCmd   (descparse validate)
//   └── versionCmd    (descparse version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading a .env file into the environment
//   3. Loading the YAML configuration and applying flag overrides
//   4. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// Vocabulary and dictionary overrides. Empty means "use the config value".
var (
	propertyCornersPath string
	miscellaneousPath   string
	dictionaryPath      string
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "descparse",
	Short: "Point Description Parser - Normalise survey point descriptions",
	Long: `Point Description Parser rewrites the description field of survey point
files so that drafting tools read them consistently. Codes are matched
against two vocabularies (property-corner codes and miscellaneous codes),
size tokens are prefixed with "\" and free-text qualifiers with "/".

Key Features:
  - Rule-table reordering of one- and two-code descriptions
  - Optional replacement dictionary applied before reordering
  - CSV, TXT and XLSX point files
  - Change report listing every rewritten description

Example Usage:
  descparse process job42.csv                 # Write job42_processed.csv
  descparse process --report *.csv            # Also write a change report
  descparse preprocess job42.csv              # Dictionary step only
  descparse classify "1/4 PCF" "PCF MARKER"   # Try descriptions
  descparse validate                          # Check configuration`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags and configuration initialization.
func init() {
	cobra.OnInitialize(initEnvironment)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"descparse.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().StringVar(
		&propertyCornersPath,
		"property-corners",
		"",
		"Property-corner code list (overrides config and "+config.EnvPropertyCorners+")",
	)

	rootCmd.PersistentFlags().StringVar(
		&miscellaneousPath,
		"miscellaneous",
		"",
		"Miscellaneous code list (overrides config and "+config.EnvMiscellaneous+")",
	)

	rootCmd.PersistentFlags().StringVar(
		&dictionaryPath,
		"dictionary",
		"",
		"Replacement dictionary JSON (overrides config and "+config.EnvDictionary+")",
	)
}

// initEnvironment loads a .env file from the working directory, if any.
// Variables already set in the environment win over the file.
func initEnvironment() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}
}

// =============================================================================
// CONFIGURATION HELPERS
// =============================================================================

// loadConfig loads the main configuration, applies the persistent flag
// overrides and configures logging. The config file is only required when
// --config was given explicitly.
func loadConfig() (*config.MainConfig, error) {
	required := rootCmd.PersistentFlags().Changed("config")

	mainConfig, err := config.LoadMainConfig(cfgFile, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}

	if propertyCornersPath != "" {
		mainConfig.Vocabulary.PropertyCorners = propertyCornersPath
	}
	if miscellaneousPath != "" {
		mainConfig.Vocabulary.Miscellaneous = miscellaneousPath
	}
	if dictionaryPath != "" {
		mainConfig.Dictionary = dictionaryPath
	}
	if verbose {
		mainConfig.Logging.Level = "debug"
	}

	logging.Setup(mainConfig.Logging.Level, mainConfig.Logging.Format)
	slog.Debug("configuration loaded",
		"config", cfgFile,
		"property_corners", mainConfig.Vocabulary.PropertyCorners,
		"miscellaneous", mainConfig.Vocabulary.Miscellaneous,
		"dictionary", mainConfig.Dictionary,
	)

	return mainConfig, nil
}
