// =============================================================================
// Point Description Parser - Validation Engine
// =============================================================================
//
// This module checks the shape of a point table before any description is
// rewritten. The description lives in the fifth field, so:
//   - An empty table is fatal.
//   - A table where no row reaches five fields is fatal: there is nothing
//     to rewrite and the file is probably not a point file, or was read
//     with the wrong delimiter.
//   - A data row narrower than five fields is a warning only. It is passed
//     through unchanged.
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error carries the 1-based row number and field count
//   - Errors are either warnings (continue) or errors (stop this file)
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/types"
)

// MinFields is the narrowest row that carries a description.
const MinFields = 5

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names.
const (
	RuleEmptyTable   = "empty-table"
	RuleNoWideRow    = "no-description-column"
	RuleShortDataRow = "short-data-row"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single table shape problem.
type ValidationError struct {
	// Severity indicates the severity of the error.
	// "error" = fatal, the file is not processed
	// "warning" = non-fatal, processing continues
	Severity string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the 1-based row number, or 0 for table-level errors.
	RowNumber int

	// FieldCount is the number of fields found in the row.
	FieldCount int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("[%s] %s", strings.ToUpper(e.Severity), e.Message)
	}
	return fmt.Sprintf("[%s] Row %d (%d fields): %s",
		strings.ToUpper(e.Severity),
		e.RowNumber,
		e.FieldCount,
		e.Message,
	)
}

// IsFatal reports whether the error stops processing.
func (e *ValidationError) IsFatal() bool {
	return e.Severity == SeverityError
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all validation errors (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// RowsValidated is the total number of rows inspected.
	RowsValidated int
}

// Err returns the first fatal error, or nil.
func (r *ValidationResult) Err() error {
	for _, e := range r.Errors {
		if e.IsFatal() {
			return e
		}
	}
	return nil
}

// Warnings returns the non-fatal errors.
func (r *ValidationResult) Warnings() []*ValidationError {
	var warnings []*ValidationError
	for _, e := range r.Errors {
		if !e.IsFatal() {
			warnings = append(warnings, e)
		}
	}
	return warnings
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.IsFatal() {
		r.ErrorCount++
		r.IsValid = false
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validate checks the table shape.
//
// PARAMETERS:
//   - table: The table to inspect.
//   - isHeader: Classifies label rows, which are exempt from the short-row
//     warning. May be nil, in which case every row is treated as data.
//
// RETURNS:
//   - A ValidationResult; IsValid is false when the file must not be processed.
func Validate(table *types.Table, isHeader func(row []string) bool) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if table.Len() == 0 {
		result.add(&ValidationError{
			Severity: SeverityError,
			Rule:     RuleEmptyTable,
			Message:  "the file contains no rows",
		})
		return result
	}

	widest := 0
	for i, row := range table.Rows {
		result.RowsValidated++
		widest = max(widest, len(row))

		if len(row) >= MinFields {
			continue
		}
		if isHeader != nil && isHeader(row) {
			continue
		}

		result.add(&ValidationError{
			Severity:   SeverityWarning,
			Rule:       RuleShortDataRow,
			Message:    fmt.Sprintf("fewer than %d fields, description left unchanged", MinFields),
			RowNumber:  i + 1,
			FieldCount: len(row),
		})
	}

	if widest < MinFields {
		result.add(&ValidationError{
			Severity:   SeverityError,
			Rule:       RuleNoWideRow,
			Message:    fmt.Sprintf("no row has the %d fields needed for a description (widest row has %d); check the delimiter", MinFields, widest),
			FieldCount: widest,
		})
	}

	return result
}

// FormatErrors formats validation errors for display or logging.
//
// PARAMETERS:
//   - errors: The validation errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
