package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/point-description-parser/internal/converter"
	"github.com/ginjaninja78/point-description-parser/internal/description"
	"github.com/ginjaninja78/point-description-parser/internal/validation"
)

func TestStatusPrinter_Result(t *testing.T) {
	tests := []struct {
		name   string
		result converter.Result
		want   []string
	}{
		{
			name: "success",
			result: converter.Result{
				FilePath:   "/data/job1.csv",
				OutputFile: "/data/job1_processed.csv",
				Success:    true,
			},
			want: []string{"✓ job1.csv -> /data/job1_processed.csv (3 rewritten)"},
		},
		{
			name:   "dry run",
			result: converter.Result{FilePath: "job1.csv", Success: true},
			want:   []string{"job1.csv -> (dry run)"},
		},
		{
			name:   "failure",
			result: converter.Result{FilePath: "job1.csv", Error: errors.New("boom")},
			want:   []string{"✗ job1.csv: boom"},
		},
		{
			name: "warnings and extra files",
			result: converter.Result{
				FilePath:         "job1.csv",
				OutputFile:       "job1_processed.csv",
				PreprocessedFile: "preprocessed_job1.csv",
				ReportFile:       "job1_changes.csv",
				Success:          true,
				Warnings:         []*validation.ValidationError{{Severity: validation.SeverityWarning}},
			},
			want: []string{
				"1 short row(s) passed through unchanged",
				"preprocessed: preprocessed_job1.csv",
				"report:       job1_changes.csv",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := &statusPrinter{w: &buf}
			p.result(tt.result, 3, "rewritten")

			got := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
			if strings.Contains(got, "\033[") {
				t.Errorf("output %q contains colour codes without a terminal", got)
			}
		})
	}
}

func TestStatusPrinter_Paint(t *testing.T) {
	p := &statusPrinter{color: true}
	if got := p.paint(ansiRed, "x"); got != ansiRed+"x"+ansiReset {
		t.Errorf("paint() = %q", got)
	}

	p.color = false
	if got := p.paint(ansiRed, "x"); got != "x" {
		t.Errorf("paint() without colour = %q, want %q", got, "x")
	}
}

func TestStatusPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := &statusPrinter{w: &buf}
	p.summary(converter.Summary{Files: 3, Succeeded: 2, Failed: 1, Rewritten: 7, Duration: time.Second})

	got := buf.String()
	for _, want := range []string{"Total files:     3", "Successful:      2", "Errors:          1", "Rewritten:       7", "Time elapsed:    1s"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q does not contain %q", got, want)
		}
	}
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name    string
		outcome description.Outcome
		want    string
	}{
		{"bypassed", description.Outcome{Bypassed: true, Count: description.Two}, "bypassed"},
		{"no rule", description.Outcome{Count: description.Zero}, "zero: no rule"},
		{"rules", description.Outcome{Count: description.Two, Rules: []string{"a", "b"}}, "two: a+b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := explain(tt.outcome); got != tt.want {
				t.Errorf("explain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModuleVersion(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "1.2.3"
	if got := moduleVersion(); got != "1.2.3" {
		t.Errorf("moduleVersion() = %q, want %q", got, "1.2.3")
	}

	Version = ""
	if got := moduleVersion(); got == "" {
		t.Error("moduleVersion() is empty without a set Version")
	}
}
