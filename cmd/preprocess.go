// =============================================================================
// Point Description Parser - Preprocess Command
// =============================================================================
//
// This file defines the 'preprocess' command, which runs only the
// replacement dictionary over point files and writes
// preprocessed_<name><ext>. The code vocabularies are not needed.
//
// COMMAND USAGE:
//   descparse preprocess [--dictionary FILE] [--output-dir DIR] FILE...
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/converter"
	"github.com/ginjaninja78/point-description-parser/internal/dictionary"
	"github.com/ginjaninja78/point-description-parser/pkg/utils"
	"github.com/spf13/cobra"
)

// preprocessCmd represents the 'preprocess' command.
var preprocessCmd = &cobra.Command{
	Use:   "preprocess FILE...",
	Short: "Apply the replacement dictionary to point files",
	Long: `The preprocess command applies the replacement dictionary to the last
field of every data row and writes preprocessed_<name><ext>. Replacements are
applied in dictionary order; label rows are left alone.

Run "descparse process" on the result to reorder the descriptions.`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreprocess(args)
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for output files (default: next to each input)")
	preprocessCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply the dictionary without writing any file")
}

// runPreprocess applies the dictionary to every file argument.
func runPreprocess(files []string) error {
	startTime := time.Now()

	mainConfig, err := loadConfig()
	if err != nil {
		return err
	}
	if mainConfig.Dictionary == "" {
		return fmt.Errorf("no dictionary configured: set dictionary in %s, --dictionary or %s", cfgFile, config.EnvDictionary)
	}

	dict, err := dictionary.Load(mainConfig.Dictionary)
	if err != nil {
		return err
	}
	slog.Info("dictionary loaded", "path", dict.Path, "replacements", dict.Len())

	engine := &converter.Engine{Dictionary: dict}
	options := converter.Options{DryRun: dryRun, OutputDir: outputDir}

	out := newStatusPrinter(os.Stdout)
	results := make([]converter.Result, 0, len(files))

	for _, file := range files {
		result := converter.New(file, mainConfig, engine, options).Preprocess()
		if !result.Success {
			slog.Error("file failed", "file", file, "error", result.Error)
		}
		out.result(result, result.Stats.Substituted, "rows substituted")
		results = append(results, result)
	}

	summary := converter.Summarize(utils.NewRunID(), results, time.Since(startTime))
	slog.Info("preprocess complete", "summary", summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, summary.Files)
	}
	return nil
}
