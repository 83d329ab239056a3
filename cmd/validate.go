// =============================================================================
// Point Description Parser - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the configuration,
// code vocabularies and dictionary without processing anything. Point files
// given as arguments are read and their table shape is checked too.
//
// COMMAND USAGE:
//   descparse validate [FILE...]
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/converter"
	"github.com/ginjaninja78/point-description-parser/internal/table"
	"github.com/ginjaninja78/point-description-parser/internal/validation"
	"github.com/spf13/cobra"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate [FILE...]",
	Short: "Check configuration, vocabularies and point files",
	Long: `The validate command loads the configuration, both code vocabularies and
the replacement dictionary, and reports what was found. It fails when a
vocabulary is missing or empty, or the dictionary cannot be parsed.

Point files given as arguments are read and checked for a description column.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate reports on the configuration and any file arguments.
func runValidate(files []string) error {
	mainConfig, err := loadConfig()
	if err != nil {
		return err
	}
	if err := mainConfig.Validate(); err != nil {
		return err
	}

	engine, err := loadEngine(mainConfig)
	if err != nil {
		return err
	}

	out := newStatusPrinter(os.Stdout)
	fmt.Fprintf(out.w, "Property corners: %d code(s) from %s\n", engine.Vocabulary.PropertyCorners.Len(), mainConfig.Vocabulary.PropertyCorners)
	fmt.Fprintf(out.w, "Miscellaneous:    %d code(s) from %s\n", engine.Vocabulary.Miscellaneous.Len(), mainConfig.Vocabulary.Miscellaneous)
	if engine.Dictionary != nil {
		fmt.Fprintf(out.w, "Dictionary:       %d replacement(s) from %s\n", engine.Dictionary.Len(), engine.Dictionary.Path)
	} else {
		fmt.Fprintf(out.w, "Dictionary:       none\n")
	}
	fmt.Fprintf(out.w, "Bypass tokens:    %s (%s)\n", strings.Join(mainConfig.Reorder.BypassTokens, ", "), mainConfig.Reorder.BypassPrecedence)

	failed := 0
	for _, file := range files {
		data, err := table.Read(file, mainConfig.CSV)
		if err != nil {
			failed++
			fmt.Fprintf(out.w, "  %s %s: %v\n", out.paint(ansiRed, "✗"), file, err)
			continue
		}

		result := validation.Validate(data, converter.IsHeader)
		if !result.IsValid {
			failed++
			fmt.Fprintf(out.w, "  %s %s: %v\n", out.paint(ansiRed, "✗"), file, result.Err())
			continue
		}

		fmt.Fprintf(out.w, "  %s %s: %d row(s), %d warning(s)\n", out.paint(ansiGreen, "✓"), file, result.RowsValidated, result.WarningCount)
		if verbose && result.WarningCount > 0 {
			fmt.Fprint(out.w, validation.FormatErrors(result.Warnings()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) invalid", failed, len(files))
	}
	return nil
}
