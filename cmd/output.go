package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/point-description-parser/internal/converter"
	"golang.org/x/term"
)

const (
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// statusPrinter writes one line per processed file. Colour is only used
// when writing to a terminal.
type statusPrinter struct {
	w     io.Writer
	color bool
}

func newStatusPrinter(f *os.File) *statusPrinter {
	return &statusPrinter{
		w:     f,
		color: term.IsTerminal(int(f.Fd())),
	}
}

func (p *statusPrinter) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

// result prints the outcome of one file with one headline count.
func (p *statusPrinter) result(r converter.Result, count int, noun string) {
	name := filepath.Base(r.FilePath)

	if !r.Success {
		fmt.Fprintf(p.w, "  %s %s: %v\n", p.paint(ansiRed, "✗"), name, r.Error)
		return
	}

	target := r.OutputFile
	if target == "" {
		target = "(dry run)"
	}
	fmt.Fprintf(p.w, "  %s %s -> %s (%d %s)\n",
		p.paint(ansiGreen, "✓"), name, target, count, noun)

	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(p.w, "    %s %d short row(s) passed through unchanged\n", p.paint(ansiYellow, "!"), n)
	}
	if r.PreprocessedFile != "" {
		fmt.Fprintf(p.w, "    preprocessed: %s\n", r.PreprocessedFile)
	}
	if r.ReportFile != "" {
		fmt.Fprintf(p.w, "    report:       %s\n", r.ReportFile)
	}
}

// summary prints the totals of a run.
func (p *statusPrinter) summary(s converter.Summary) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "Total files:     %d\n", s.Files)
	fmt.Fprintf(p.w, "Successful:      %s\n", p.paint(ansiGreen, fmt.Sprint(s.Succeeded)))
	if s.Failed > 0 {
		fmt.Fprintf(p.w, "Errors:          %s\n", p.paint(ansiRed, fmt.Sprint(s.Failed)))
	} else {
		fmt.Fprintf(p.w, "Errors:          0\n")
	}
	fmt.Fprintf(p.w, "Rewritten:       %d\n", s.Rewritten)
	fmt.Fprintf(p.w, "Time elapsed:    %s\n", s.Duration)
}
