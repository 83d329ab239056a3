// =============================================================================
// Point Description Parser - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the parser, including:
//   - Output file naming from placeholder formats
//   - Output directory management
//   - Run identifiers
//
// NAMING STRATEGY:
//   - Outputs are written next to the input unless an output directory is set
//   - A "preprocessed_" prefix left by the dictionary step is dropped before
//     the processed name is built, so "preprocessed_job.csv" becomes
//     "job_processed.csv" rather than "preprocessed_job_processed.csv"
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PreprocessedPrefix is the file name prefix written by the dictionary step.
const PreprocessedPrefix = "preprocessed_"

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands a file name format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               plus any key of params, e.g. {name} and {ext}
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{name}_processed{ext}"
//   params: {"name": "job42", "ext": ".csv"}
//   output: "job42_processed.csv"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// Expand longest placeholders first; map order is random.
	placeholders := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		placeholders = append(placeholders, placeholder)
	}
	sort.Slice(placeholders, func(i, j int) bool {
		return len(placeholders[i]) > len(placeholders[j])
	})

	result := format
	for _, placeholder := range placeholders {
		result = strings.ReplaceAll(result, placeholder, replacements[placeholder])
	}

	return result
}

// SplitName splits a path's base name into name and extension.
// The extension keeps its leading dot.
func SplitName(path string) (name, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// OutputPath builds the path of a file derived from inputPath.
//
// PARAMETERS:
//   - inputPath: The file being processed.
//   - outputDir: The directory to write into; empty means the input's directory.
//   - format: The name format (see GenerateOutputFileName).
//   - trimPrefix: Drop a leading PreprocessedPrefix from {name}.
//
// RETURNS:
//   - The output path.
func OutputPath(inputPath, outputDir, format string, trimPrefix bool) string {
	name, ext := SplitName(inputPath)
	if trimPrefix {
		name = strings.TrimPrefix(name, PreprocessedPrefix)
	}

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}

	fileName := GenerateOutputFileName(format, map[string]string{
		"name": name,
		"ext":  ext,
	})

	return filepath.Join(outputDir, fileName)
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectory creates dir and any parents if they do not exist.
func EnsureDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// NewRunID returns an identifier for one processing run.
func NewRunID() string {
	return uuid.New().String()
}
