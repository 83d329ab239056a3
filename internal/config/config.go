// =============================================================================
// Point Description Parser - Configuration Module
// =============================================================================
//
// This module loads the main YAML configuration. Values are resolved in
// three layers, later layers winning:
//   1. The YAML file (descparse.yaml by default)
//   2. Environment variables (optionally from a .env file)
//   3. Command-line flags (applied by the cmd package)
//
// The code vocabulary paths have no built-in defaults: they must be given
// explicitly by one of the layers above.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/description"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvPropertyCorners = "DESCPARSE_PROPERTY_CORNERS"
	EnvMiscellaneous   = "DESCPARSE_MISCELLANEOUS"
	EnvDictionary      = "DESCPARSE_DICTIONARY"
	EnvLogLevel        = "DESCPARSE_LOG_LEVEL"
	EnvLogFormat       = "DESCPARSE_LOG_FORMAT"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// Vocabulary locates the two code lists.
	Vocabulary VocabularyConfig `yaml:"vocabulary"`

	// Dictionary is the path to the JSON replacement dictionary applied
	// before reordering. Empty disables the substitution step.
	Dictionary string `yaml:"dictionary"`

	// Reorder configures the description rule engine.
	Reorder ReorderConfig `yaml:"reorder"`

	// CSV contains settings for reading and writing delimited point files.
	CSV CSVSettings `yaml:"csv"`

	// Output controls where and under which names results are written.
	Output OutputConfig `yaml:"output"`

	// Logging controls log verbosity and format.
	Logging LoggingConfig `yaml:"logging"`
}

// VocabularyConfig holds the code list locations.
type VocabularyConfig struct {
	// PropertyCorners is a text file with one property-corner code per line.
	PropertyCorners string `yaml:"property_corners"`

	// Miscellaneous is a text file with one miscellaneous code per line.
	Miscellaneous string `yaml:"miscellaneous"`
}

// ReorderConfig configures the bypass policy of the reorderer.
type ReorderConfig struct {
	// BypassTokens exempt a description from reordering.
	// Default: [TREE]
	BypassTokens []string `yaml:"bypass_tokens"`

	// BypassPrecedence is "absolute" (bypass wins over every rule) or
	// "none" (bypass disabled).
	// Default: "absolute"
	BypassPrecedence string `yaml:"bypass_precedence"`
}

// CSVSettings contains settings for delimited point files.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// OutputConfig controls output locations and names.
type OutputConfig struct {
	// Dir is the output directory. Empty writes next to each input file.
	Dir string `yaml:"dir"`

	// NameFormat names the processed file.
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {ext}       - Input file extension including the dot
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{name}_processed{ext}"
	NameFormat string `yaml:"name_format"`

	// PreprocessedFormat names the intermediate dictionary-substituted file.
	// Default: "preprocessed_{name}{ext}"
	PreprocessedFormat string `yaml:"preprocessed_format"`

	// ReportFormat names the change report.
	// Default: "{name}_changes.csv"
	ReportFormat string `yaml:"report_format"`

	// WritePreprocessed keeps the intermediate file during "process".
	WritePreprocessed bool `yaml:"write_preprocessed"`

	// ChangeReport writes a CSV listing every rewritten description.
	ChangeReport bool `yaml:"change_report"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is text or json.
	// Default: "text"
	Format string `yaml:"format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration from a YAML file and the environment.
//
// PARAMETERS:
//   - configPath: The path to the YAML file. A missing file is only an error
//     when required is true; otherwise defaults and environment are used.
//   - required: Whether configPath must exist.
//
// RETURNS:
//   - A pointer to the MainConfig struct with defaults applied.
//   - An error if the file cannot be read or parsed.
//
// Validation is separate (see Validate) so that commands can apply flag
// overrides first.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
		// Fall through to environment and defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvironment(&config)
	applyMainConfigDefaults(&config)

	return &config, nil
}

// applyEnvironment overrides file values with any set environment variables.
func applyEnvironment(config *MainConfig) {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvPropertyCorners, &config.Vocabulary.PropertyCorners},
		{EnvMiscellaneous, &config.Vocabulary.Miscellaneous},
		{EnvDictionary, &config.Dictionary},
		{EnvLogLevel, &config.Logging.Level},
		{EnvLogFormat, &config.Logging.Format},
	}

	for _, o := range overrides {
		if value := strings.TrimSpace(os.Getenv(o.env)); value != "" {
			*o.target = value
		}
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.Reorder.BypassTokens == nil {
		config.Reorder.BypassTokens = description.DefaultPolicy().BypassTokens
	}
	if config.Reorder.BypassPrecedence == "" {
		config.Reorder.BypassPrecedence = string(description.PrecedenceAbsolute)
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.Output.NameFormat == "" {
		config.Output.NameFormat = "{name}_processed{ext}"
	}
	if config.Output.PreprocessedFormat == "" {
		config.Output.PreprocessedFormat = "preprocessed_{name}{ext}"
	}
	if config.Output.ReportFormat == "" {
		config.Output.ReportFormat = "{name}_changes.csv"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
}

// Validate checks that the configuration can drive a processing run.
func (c *MainConfig) Validate() error {
	var problems []string

	if c.Vocabulary.PropertyCorners == "" {
		problems = append(problems, "vocabulary.property_corners is required")
	}
	if c.Vocabulary.Miscellaneous == "" {
		problems = append(problems, "vocabulary.miscellaneous is required")
	}
	if _, err := description.ParsePrecedence(c.Reorder.BypassPrecedence); err != nil {
		problems = append(problems, "reorder.bypass_precedence: "+err.Error())
	}
	if _, err := c.CSV.Comma(); err != nil {
		problems = append(problems, "csv.delimiter: "+err.Error())
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unknown format %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Policy builds the reorderer policy from the reorder section.
func (c *MainConfig) Policy() (description.Policy, error) {
	precedence, err := description.ParsePrecedence(c.Reorder.BypassPrecedence)
	if err != nil {
		return description.Policy{}, err
	}
	return description.Policy{
		BypassTokens: c.Reorder.BypassTokens,
		Precedence:   precedence,
	}, nil
}

// Comma resolves the configured delimiter to a rune.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r := []rune(s.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("unsupported delimiter %q", s.Delimiter)
	}
	return r[0], nil
}
