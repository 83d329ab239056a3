// Package table selects the point file codec from the file extension.
package table

import (
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/csvparser"
	"github.com/ginjaninja78/point-description-parser/internal/types"
	"github.com/ginjaninja78/point-description-parser/internal/xlsxparser"
)

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Read loads a point file. Workbooks go through excelize; anything else is
// treated as delimited text.
func Read(path string, settings config.CSVSettings) (*types.Table, error) {
	if IsWorkbook(path) {
		return xlsxparser.Parse(path)
	}
	return csvparser.Parse(path, settings)
}

// Write stores a point file in the format implied by its extension.
func Write(path string, t *types.Table, settings config.CSVSettings) error {
	if IsWorkbook(path) {
		return xlsxparser.Write(path, t)
	}
	return csvparser.Write(path, t, settings)
}
