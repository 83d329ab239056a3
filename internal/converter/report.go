package converter

import (
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/point-description-parser/internal/types"
	"github.com/jszwec/csvutil"
)

// WriteChangeReport writes one CSV line per rewritten description to path.
// A report with no changes still carries the header line.
func WriteChangeReport(path string, changes []types.Change) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create change report: %w", err)
	}

	if err := EncodeChangeReport(file, changes); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close change report: %w", err)
	}
	return nil
}

// EncodeChangeReport writes the change report to w.
func EncodeChangeReport(w io.Writer, changes []types.Change) error {
	if changes == nil {
		changes = []types.Change{}
	}

	data, err := csvutil.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to encode change report: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write change report: %w", err)
	}
	return nil
}

// ReadChangeReport decodes a change report written by WriteChangeReport.
func ReadChangeReport(path string) ([]types.Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read change report: %w", err)
	}

	var changes []types.Change
	if err := csvutil.Unmarshal(data, &changes); err != nil {
		return nil, fmt.Errorf("failed to decode change report: %w", err)
	}
	return changes, nil
}
