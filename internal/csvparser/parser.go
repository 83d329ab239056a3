// =============================================================================
// Point Description Parser - CSV Parser Module
// =============================================================================
//
// This module reads and writes delimited point files. Point files have no
// fixed header layout: a file may start with zero or more label rows, and
// rows may carry different numbers of fields. The whole file is read into a
// types.Table and written back with every field preserved.
//
// FEATURES:
//   - Configurable delimiter (comma, pipe, tab, semicolon, any single rune)
//   - Variable field counts per row
//   - Lazy quotes for hand-edited files
//   - A leading UTF-8 byte order mark is dropped
//   - Blank lines are kept as empty rows
//   - CRLF line endings are detected and written back
//
// =============================================================================

package csvparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/types"
)

// utf8BOM is skipped when present at the start of the input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a delimited point file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the point file.
//   - settings: The CSV settings from the main configuration.
//
// RETURNS:
//   - A pointer to the Table containing every row of the file.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// ParseReader reads a delimited table from r. The whole input is read
// first; encoding/csv drops blank lines, so they are found by offset and
// put back as empty rows.
func ParseReader(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	csvReader := csv.NewReader(bytes.NewReader(data))
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	table := &types.Table{CRLF: usesCRLF(data)}

	var offset int64
	for {
		blanks, size := blankLines(data[offset:])
		for i := 0; i < blanks; i++ {
			table.Rows = append(table.Rows, []string{})
		}
		offset += size

		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		table.Rows = append(table.Rows, record)
		offset = csvReader.InputOffset()
	}

	return table, nil
}

// blankLines counts the empty lines at the start of data and returns their
// total size in bytes.
func blankLines(data []byte) (count int, size int64) {
	for {
		rest := data[size:]
		switch {
		case bytes.HasPrefix(rest, []byte("\n")):
			size++
		case bytes.HasPrefix(rest, []byte("\r\n")):
			size += 2
		default:
			return count, size
		}
		count++
	}
}

// usesCRLF reports whether the first line of data ends in CRLF.
func usesCRLF(data []byte) bool {
	i := bytes.IndexByte(data, '\n')
	return i > 0 && data[i-1] == '\r'
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Allow variable number of fields per row.
	// Label rows and short rows are common in point files.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Leading spaces are kept: non-description fields are written back as read.
	reader.TrimLeadingSpace = false

	return nil
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write writes the table to filePath, creating or truncating it.
//
// PARAMETERS:
//   - filePath: The destination path.
//   - table: The rows to write.
//   - settings: The CSV settings; the same delimiter is used for output.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func Write(filePath string, table *types.Table, settings config.CSVSettings) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteTo(file, table, settings); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// WriteTo writes the table to w. Empty rows become blank lines, and lines
// end in CRLF when the table was read that way.
func WriteTo(w io.Writer, table *types.Table, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = comma
	csvWriter.UseCRLF = table.CRLF

	if err := csvWriter.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
