// =============================================================================
// Point Description Parser - XLSX Parser Module
// =============================================================================
//
// This module reads and writes point files stored as Excel workbooks. Only
// the first sheet is read; each spreadsheet row becomes one table row with
// its cells in column order. Output workbooks hold a single sheet.
//
// Cells are read by their stored value, never the number-format display
// text, so coordinates keep full precision and header detection on the
// second field works the same as for delimited files. On write, a field
// whose text is the canonical form of a number is stored as a number.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ginjaninja78/point-description-parser/internal/types"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name given to the sheet of written workbooks.
const DefaultSheetName = "Points"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first sheet of an XLSX workbook.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//
// RETURNS:
//   - A pointer to the Table with one row per non-empty spreadsheet row.
//   - An error if the workbook cannot be opened or has no sheets.
func Parse(filePath string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table := &types.Table{
		Rows:       make([][]string, 0, len(rows)),
		SourceFile: filePath,
	}

	for _, row := range rows {
		// Blank rows are kept as empty rows, matching the CSV reader.
		if isRowEmpty(row) {
			row = []string{}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write stores the table as a single-sheet workbook at filePath.
//
// PARAMETERS:
//   - filePath: The destination path (should end in .xlsx).
//   - table: The rows to write. Numeric text is stored as numbers, the
//     rest as strings.
//
// RETURNS:
//   - An error if a row cannot be set or the workbook cannot be saved.
func Write(filePath string, table *types.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DefaultSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}

		if err := f.SetSheetRow(DefaultSheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// cellValue returns a float64 when s is exactly how strconv formats that
// number, so "5000.123456" is stored as a number but "007", "1e3" and
// "NaN" stay text.
func cellValue(s string) interface{} {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if strconv.FormatFloat(f, 'f', -1, 64) != s {
		return s
	}
	return f
}
