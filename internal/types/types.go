// =============================================================================
// Point Description Parser - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser / table
//   - dictionary
//   - validation
//   - converter
//
// =============================================================================

package types

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is a fully materialised point file: an ordered list of rows, each an
// ordered list of raw field values. Rows may have different field counts.
type Table struct {
	// Rows holds the records in file order.
	Rows [][]string

	// SourceFile is the path the table was read from, if any.
	SourceFile string

	// CRLF is set when a delimited source used CRLF line endings.
	CRLF bool
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy, so the original rows can be kept for reporting.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}

	return &Table{Rows: rows, SourceFile: t.SourceFile, CRLF: t.CRLF}
}

// =============================================================================
// CHANGE RECORDS
// =============================================================================

// Change records one rewritten description. The csv tags drive the change
// report written by the converter.
type Change struct {
	// Row is the 1-based row number in the input table.
	Row int `csv:"row"`

	// Point is the point identifier (field 0).
	Point string `csv:"point"`

	// Before is the description as read.
	Before string `csv:"before"`

	// After is the rewritten description.
	After string `csv:"after"`

	// Rules lists the rules that fired, separated by "+".
	Rules string `csv:"rules"`
}
