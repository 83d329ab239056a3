package xlsxparser

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ginjaninja78/point-description-parser/internal/types"
	"github.com/xuri/excelize/v2"
)

func TestWriteParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.xlsx")
	rows := [][]string{
		{"Point", "Northing", "Easting", "Elev", "Desc"},
		{"1", "5000.1", "2000.2", "100.5", `PCF \1/2`},
		{"2", "5001", "2001"},
	}

	if err := Write(path, &types.Table{Rows: rows}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	table, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(table.Rows, rows) {
		t.Errorf("Rows = %q, want %q", table.Rows, rows)
	}
	if table.SourceFile != path {
		t.Errorf("SourceFile = %q", table.SourceFile)
	}
}

func TestParse_KeepsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gaps.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "1"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "E1", "PCF 1/2"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "A3", "2"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	table, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := [][]string{
		{"1", "", "", "", "PCF 1/2"},
		{},
		{"2"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %q, want %q", table.Rows, want)
	}
}

func TestParse_MissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatal("Parse() expected error")
	}
}

func TestParse_StyledNumbersUseStoredValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styled.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{1, 5000.123456, 2000.987654, 100.5, "1/4 PCF"}); err != nil {
		t.Fatal(err)
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle(sheet, "B1", "C1", style); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	table, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := [][]string{{"1", "5000.123456", "2000.987654", "100.5", "1/4 PCF"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %q, want %q", table.Rows, want)
	}
}

func TestWrite_NumbersStayNumeric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write(path, &types.Table{Rows: [][]string{{"1", "5000.123456", "007", "PCF"}}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want excelize.CellType
	}{
		{"B1", excelize.CellTypeNumber},
		{"C1", excelize.CellTypeSharedString},
		{"D1", excelize.CellTypeSharedString},
	}
	for _, tt := range tests {
		got, err := f.GetCellType(DefaultSheetName, tt.cell)
		if err != nil {
			t.Fatalf("GetCellType(%s) error = %v", tt.cell, err)
		}
		if tt.want == excelize.CellTypeNumber && got == excelize.CellTypeUnset {
			got = excelize.CellTypeNumber
		}
		if got != tt.want {
			t.Errorf("GetCellType(%s) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		input string
		want  interface{}
	}{
		{"5000.123456", 5000.123456},
		{"1", float64(1)},
		{"-12.5", -12.5},
		{"007", "007"},
		{"1e3", "1e3"},
		{"5000.10", "5000.10"},
		{"NaN", "NaN"},
		{"PCF 1/2", "PCF 1/2"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cellValue(tt.input); got != tt.want {
			t.Errorf("cellValue(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}
