package table

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ginjaninja78/point-description-parser/internal/config"
	"github.com/ginjaninja78/point-description-parser/internal/types"
)

func TestIsWorkbook(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"points.xlsx", true},
		{"POINTS.XLSX", true},
		{"macro.xlsm", true},
		{"points.csv", false},
		{"points.txt", false},
		{"points", false},
	}

	for _, tt := range tests {
		if got := IsWorkbook(tt.path); got != tt.want {
			t.Errorf("IsWorkbook(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestReadWrite(t *testing.T) {
	rows := [][]string{
		{"1", "5000", "2000", "100", "PCF 1/2"},
		{"2", "5001", "2001"},
	}

	for _, name := range []string{"points.csv", "points.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			settings := config.CSVSettings{Delimiter: ","}

			if err := Write(path, &types.Table{Rows: rows}, settings); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := Read(path, settings)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got.Rows, rows) {
				t.Errorf("Rows = %q, want %q", got.Rows, rows)
			}
		})
	}
}
