// =============================================================================
// Point Description Parser - Converter Module
// =============================================================================
//
// This module orchestrates the processing pipeline for a single point file.
//
// PROCESSING PIPELINE:
//   1. Read the point file (CSV-like text or XLSX)
//   2. Validate the table shape
//   3. Apply the replacement dictionary to the description column
//   4. Reorder the description of every data row
//   5. Write the processed file
//   6. Write the change report (optional)
//
// The preprocess pipeline stops after step 3 and writes the substituted
// table instead.
//
// CONCURRENCY:
//   Files are processed one at a time. A Converter holds no shared mutable
//   state; the Engine it uses is read-only.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/description"
	"github.com/ginjaninja78/point-description-parser/internal/dictionary"
	"github.com/ginjaninja78/point-description-parser/internal/logging"
	"github.com/ginjaninja78/point-description-parser/internal/table"
	"github.com/ginjaninja78/point-description-parser/internal/types"
	"github.com/ginjaninja78/point-description-parser/internal/validation"
	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
	"github.com/ginjaninja78/point-description-parser/pkg/utils"
)

// ErrNoDictionary is returned by Preprocess when no dictionary is configured.
var ErrNoDictionary = errors.New("no replacement dictionary configured")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the processed (or preprocessed) file.
	// This is empty if processing failed or on a dry run.
	OutputFile string

	// PreprocessedFile is the intermediate dictionary output, if kept.
	PreprocessedFile string

	// ReportFile is the change report, if written.
	ReportFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Warnings are the non-fatal validation findings.
	Warnings []*validation.ValidationError

	// Changes lists every rewritten description.
	Changes []types.Change

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	TransformStats

	// Substituted is the number of rows changed by the dictionary.
	Substituted int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine bundles the read-only state shared by every file of a run.
type Engine struct {
	// Vocabulary holds the two code sets.
	Vocabulary *vocabulary.Vocabulary

	// Dictionary is nil when no dictionary is configured.
	Dictionary *dictionary.Dictionary

	// Reorderer is built from Vocabulary and the configured policy.
	Reorderer *description.Reorderer
}

// LoadEngine loads the vocabularies and dictionary named by mainConfig.
//
// RETURNS:
//   - The Engine.
//   - A *vocabulary.ConfigError when a code list cannot be read,
//     vocabulary.ErrEmptyVocabulary when one is empty, or a dictionary or
//     policy error. No Engine is returned with an error.
func LoadEngine(mainConfig *config.MainConfig) (*Engine, error) {
	policy, err := mainConfig.Policy()
	if err != nil {
		return nil, err
	}

	vocab, err := vocabulary.Load(mainConfig.Vocabulary.PropertyCorners, mainConfig.Vocabulary.Miscellaneous)
	if err != nil {
		return nil, err
	}
	if err := vocab.Check(); err != nil {
		return nil, err
	}

	engine := &Engine{
		Vocabulary: vocab,
		Reorderer:  description.NewReorderer(vocab, policy),
	}

	if mainConfig.Dictionary != "" {
		dict, err := dictionary.Load(mainConfig.Dictionary)
		if err != nil {
			return nil, err
		}
		engine.Dictionary = dict
	}

	return engine, nil
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options are the per-run switches set from the command line.
type Options struct {
	// DryRun processes the file but writes nothing.
	DryRun bool

	// ChangeReport writes the change report next to the output.
	ChangeReport bool

	// WritePreprocessed keeps the dictionary-substituted table during Run.
	WritePreprocessed bool

	// OutputDir overrides the output directory; empty writes next to the input.
	OutputDir string
}

// Converter handles the processing of a single point file.
type Converter struct {
	// inputPath is the path to the input point file.
	inputPath string

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// engine holds the vocabulary, dictionary and reorderer.
	engine *Engine

	// options are the per-run switches.
	options Options

	// logger is tagged with the input file.
	logger *slog.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the input point file.
//   - mainConfig: The main application configuration.
//   - engine: The loaded vocabulary, dictionary and reorderer.
//   - options: Per-run switches.
//
// RETURNS:
//   - A new Converter instance.
func New(inputPath string, mainConfig *config.MainConfig, engine *Engine, options Options) *Converter {
	if options.OutputDir == "" {
		options.OutputDir = mainConfig.Output.Dir
	}
	options.ChangeReport = options.ChangeReport || mainConfig.Output.ChangeReport
	options.WritePreprocessed = options.WritePreprocessed || mainConfig.Output.WritePreprocessed

	return &Converter{
		inputPath:  inputPath,
		mainConfig: mainConfig,
		engine:     engine,
		options:    options,
		logger:     logging.WithFile(slog.Default(), inputPath),
	}
}

// WithLogger replaces the logger. The file attribute is added to it.
func (c *Converter) WithLogger(logger *slog.Logger) *Converter {
	c.logger = logging.WithFile(logger, c.inputPath)
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the full processing pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
		Success:  false,
	}

	// An empty vocabulary would leave every description untouched and
	// still look like a successful run.
	if c.engine == nil || c.engine.Reorderer == nil {
		result.Error = fmt.Errorf("no vocabulary loaded: %w", vocabulary.ErrEmptyVocabulary)
		return result
	}
	if err := c.engine.Vocabulary.Check(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEPS 1-3: READ, VALIDATE, SUBSTITUTE
	// =========================================================================

	c.logger.Info("processing file")

	data, err := c.prepare(&result)
	if err != nil {
		result.Error = err
		return result
	}

	if c.options.WritePreprocessed && c.engine.Dictionary != nil && !c.options.DryRun {
		path, err := c.write(data, c.mainConfig.Output.PreprocessedFormat, false)
		if err != nil {
			result.Error = fmt.Errorf("failed to write preprocessed file: %w", err)
			return result
		}
		result.PreprocessedFile = path
		c.logger.Debug("preprocessed file written", "path", path)
	}

	// =========================================================================
	// STEP 4: REORDER DESCRIPTIONS
	// =========================================================================

	processed, changes, stats := NewTransformer(c.engine.Reorderer).Transform(data)
	result.Changes = changes
	result.Stats.TransformStats = stats

	for _, change := range changes {
		c.logger.Debug("description rewritten",
			"row", change.Row,
			"before", change.Before,
			"after", change.After,
			"rules", change.Rules,
		)
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	if !c.options.DryRun {
		path, err := c.write(processed, c.mainConfig.Output.NameFormat, true)
		if err != nil {
			result.Error = fmt.Errorf("failed to write output: %w", err)
			return result
		}
		result.OutputFile = path
	}

	// =========================================================================
	// STEP 6: CHANGE REPORT
	// =========================================================================

	if c.options.ChangeReport && !c.options.DryRun {
		path := utils.OutputPath(c.inputPath, c.options.OutputDir, c.mainConfig.Output.ReportFormat, true)
		if err := WriteChangeReport(path, changes); err != nil {
			result.Error = err
			return result
		}
		result.ReportFile = path
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	result.Success = true

	c.logger.Info("file processed",
		"rows", stats.Rows,
		"headers", stats.HeaderRows,
		"rewritten", stats.Rewritten,
		"bypassed", stats.Bypassed,
		"output", result.OutputFile,
		"duration", result.Stats.ProcessingTime,
	)

	return result
}

// Preprocess runs only the dictionary substitution and writes the
// substituted table.
func (c *Converter) Preprocess() Result {
	startTime := time.Now()
	result := Result{FilePath: c.inputPath}

	if c.engine == nil || c.engine.Dictionary == nil {
		result.Error = ErrNoDictionary
		return result
	}

	c.logger.Info("preprocessing file")

	data, err := c.prepare(&result)
	if err != nil {
		result.Error = err
		return result
	}

	if !c.options.DryRun {
		path, err := c.write(data, c.mainConfig.Output.PreprocessedFormat, false)
		if err != nil {
			result.Error = fmt.Errorf("failed to write preprocessed file: %w", err)
			return result
		}
		result.OutputFile = path
	}

	result.Stats.Rows = data.Len()
	result.Stats.ProcessingTime = time.Since(startTime)
	result.Success = true

	c.logger.Info("file preprocessed",
		"replacements", c.engine.Dictionary.Len(),
		"rows_changed", result.Stats.Substituted,
		"output", result.OutputFile,
	)

	return result
}

// prepare reads, validates and substitutes the input table.
func (c *Converter) prepare(result *Result) (*types.Table, error) {
	data, err := table.Read(c.inputPath, c.mainConfig.CSV)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	c.logger.Debug("input read", "rows", data.Len())

	validationResult := validation.Validate(data, IsHeader)
	result.Warnings = validationResult.Warnings()
	for _, w := range result.Warnings {
		c.logger.Warn("row passed through", "row", w.RowNumber, "fields", w.FieldCount, "reason", w.Message)
	}
	if err := validationResult.Err(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if c.engine.Dictionary != nil {
		result.Stats.Substituted = c.engine.Dictionary.Apply(data, IsHeader)
		c.logger.Debug("dictionary applied",
			"replacements", c.engine.Dictionary.Len(),
			"rows_changed", result.Stats.Substituted,
		)
	}

	return data, nil
}

// write stores t under a name derived from the input file.
func (c *Converter) write(t *types.Table, format string, trimPrefix bool) (string, error) {
	if err := utils.EnsureDirectory(c.options.OutputDir); err != nil {
		return "", err
	}

	path := utils.OutputPath(c.inputPath, c.options.OutputDir, format, trimPrefix)
	if err := table.Write(path, t, c.mainConfig.CSV); err != nil {
		return "", err
	}
	return path, nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// Summary aggregates the results of one command invocation.
type Summary struct {
	RunID     string
	Files     int
	Succeeded int
	Failed    int
	Rows      int
	Rewritten int
	Duration  time.Duration
}

// Summarize totals a set of results.
func Summarize(runID string, results []Result, duration time.Duration) Summary {
	s := Summary{RunID: runID, Files: len(results), Duration: duration}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		s.Rows += r.Stats.Rows
		s.Rewritten += r.Stats.Rewritten
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("files", s.Files),
		slog.Int("succeeded", s.Succeeded),
		slog.Int("failed", s.Failed),
		slog.Int("rows", s.Rows),
		slog.Int("rewritten", s.Rewritten),
		slog.Duration("duration", s.Duration),
	)
}
