// =============================================================================
// Point Description Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command for rewriting
// point descriptions.
//
// COMMAND USAGE:
//   descparse process [flags] FILE...
//
// FLAGS:
//   --dry-run       : Process without writing any file
//   --report        : Write a change report per file
//   --no-bypass     : Reorder descriptions that contain a bypass token
//   --output-dir    : Write outputs to this directory
//   --preprocessed  : Keep the dictionary-substituted intermediate file
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Load the vocabularies and dictionary; refuse to run if unusable
//   3. For each file, in order:
//      a. Read the point file
//      b. Validate the table shape
//      c. Apply the replacement dictionary
//      d. Reorder descriptions
//      e. Write the processed file (and change report)
//   4. Print and log a summary; exit non-zero if any file failed
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/converter"
	"github.com/ginjaninja78/point-description-parser/internal/description"
	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
	"github.com/ginjaninja78/point-description-parser/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun processes files without writing output.
var dryRun bool

// changeReport writes a change report per file.
var changeReport bool

// noBypass sets the bypass precedence to "none".
var noBypass bool

// outputDir overrides the configured output directory.
var outputDir string

// keepPreprocessed keeps the intermediate dictionary output.
var keepPreprocessed bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process FILE...",
	Short: "Rewrite the descriptions of point files",
	Long: `The process command reads each point file, applies the replacement
dictionary (if configured) and reorders the description field of every data
row. Results are written to <name>_processed<ext>.

Files are processed one after another. An error in one file does not stop
the others, but the command exits with a non-zero status.

The command refuses to run when either code vocabulary is missing or empty:
without codes no description could be rewritten.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Process without writing any file")
	processCmd.Flags().BoolVar(&changeReport, "report", false, "Write a change report for each file")
	processCmd.Flags().BoolVar(&noBypass, "no-bypass", false, "Reorder descriptions even when they contain a bypass token")
	processCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for output files (default: next to each input)")
	processCmd.Flags().BoolVar(&keepPreprocessed, "preprocessed", false, "Keep the dictionary-substituted intermediate file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the pipeline over every file argument.
func runProcess(files []string) error {
	startTime := time.Now()
	runID := utils.NewRunID()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := loadConfig()
	if err != nil {
		return err
	}
	if noBypass {
		mainConfig.Reorder.BypassPrecedence = string(description.PrecedenceNone)
	}
	if err := mainConfig.Validate(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: LOAD VOCABULARIES AND DICTIONARY
	// =========================================================================

	engine, err := loadEngine(mainConfig)
	if err != nil {
		return err
	}

	slog.Info("starting run",
		"run_id", runID,
		"files", len(files),
		"property_corners", engine.Vocabulary.PropertyCorners.Len(),
		"miscellaneous", engine.Vocabulary.Miscellaneous.Len(),
		"replacements", engine.Dictionary.Len(),
		"bypass_precedence", mainConfig.Reorder.BypassPrecedence,
	)

	// =========================================================================
	// STEP 3: PROCESS FILES
	// =========================================================================

	options := converter.Options{
		DryRun:            dryRun,
		ChangeReport:      changeReport,
		WritePreprocessed: keepPreprocessed,
		OutputDir:         outputDir,
	}

	out := newStatusPrinter(os.Stdout)
	results := make([]converter.Result, 0, len(files))

	for _, file := range files {
		result := converter.New(file, mainConfig, engine, options).Run()
		if !result.Success {
			slog.Error("file failed", "file", file, "error", result.Error)
		}
		out.result(result, result.Stats.Rewritten, "rewritten")
		results = append(results, result)
	}

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	summary := converter.Summarize(runID, results, time.Since(startTime))
	slog.Info("run complete", "summary", summary)
	out.summary(summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, summary.Files)
	}
	return nil
}

// loadEngine loads the vocabularies and dictionary and turns a missing or
// empty vocabulary into a configuration failure.
func loadEngine(mainConfig *config.MainConfig) (*converter.Engine, error) {
	engine, err := converter.LoadEngine(mainConfig)
	if err == nil {
		return engine, nil
	}

	var cfgErr *vocabulary.ConfigError
	switch {
	case errors.As(err, &cfgErr), errors.Is(err, vocabulary.ErrEmptyVocabulary):
		return nil, fmt.Errorf("configuration error, no files processed: %w", err)
	default:
		return nil, err
	}
}
