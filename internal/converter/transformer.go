// =============================================================================
// Point Description Parser - Row Transformer
// =============================================================================
//
// The Transformer applies the description Reorderer to every data row of a
// table. It decides which rows are data, which field holds the description,
// and records each rewrite.
//
// ROW CLASSIFICATION:
//   A row is a Header when it has fewer than two fields or its second field
//   does not parse as a floating-point number. Everything else is
//   NumericSecondField data. The check is positional: a data row with a
//   non-numeric second field (e.g. "N/A") is treated as a header.
//
// DESCRIPTION FIELD:
//   Field index 4. Data rows with fewer than five fields pass through.
//
// The input table is never modified; a new table is returned.
//
// =============================================================================

package converter

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/description"
	"github.com/ginjaninja78/point-description-parser/internal/types"
)

const (
	// DescriptionField is the 0-based index of the description field.
	DescriptionField = 4

	// MinFields is the narrowest row whose description is rewritten.
	MinFields = DescriptionField + 1

	// ruleWhitespace is recorded when only spacing changed.
	ruleWhitespace = "whitespace"
)

// =============================================================================
// ROW CLASSIFICATION
// =============================================================================

// RowKind is the outcome of the header heuristic.
type RowKind int

const (
	// Header rows are passed through untouched.
	Header RowKind = iota

	// NumericSecondField rows are point data.
	NumericSecondField
)

func (k RowKind) String() string {
	if k == Header {
		return "header"
	}
	return "numeric-second-field"
}

// ClassifyRow applies the positional header heuristic.
func ClassifyRow(row []string) RowKind {
	if len(row) < 2 {
		return Header
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64); err != nil {
		return Header
	}
	return NumericSecondField
}

// IsHeader reports whether ClassifyRow marks row as a header.
func IsHeader(row []string) bool {
	return ClassifyRow(row) == Header
}

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer rewrites description fields with a Reorderer.
type Transformer struct {
	reorderer *description.Reorderer
}

// TransformStats counts what happened to the rows of one table.
type TransformStats struct {
	// Rows is the total number of rows.
	Rows int

	// HeaderRows were classified as headers.
	HeaderRows int

	// ShortRows were data rows without a description field.
	ShortRows int

	// Rewritten rows had their description changed.
	Rewritten int

	// Bypassed rows contained a bypass token.
	Bypassed int
}

// NewTransformer creates a Transformer around a Reorderer.
func NewTransformer(reorderer *description.Reorderer) *Transformer {
	return &Transformer{reorderer: reorderer}
}

// TransformDescription reorders one description string.
//
// The description is split on whitespace and re-joined with single spaces,
// even when no rule fires.
func (t *Transformer) TransformDescription(desc string) (string, description.Outcome) {
	return t.reorderer.ReorderString(desc)
}

// Transform processes every row of table.
//
// PARAMETERS:
//   - table: The rows to process. Not modified.
//
// RETURNS:
//   - A new table with field 4 of data rows rewritten. All other fields and
//     row order are preserved exactly.
//   - One Change per row whose description changed.
//   - Row counts.
func (t *Transformer) Transform(table *types.Table) (*types.Table, []types.Change, TransformStats) {
	out := table.Clone()
	if out == nil {
		out = &types.Table{}
	}

	var (
		changes []types.Change
		stats   = TransformStats{Rows: len(out.Rows)}
	)

	for i, row := range out.Rows {
		if ClassifyRow(row) == Header {
			stats.HeaderRows++
			continue
		}
		if len(row) < MinFields {
			stats.ShortRows++
			continue
		}

		before := row[DescriptionField]
		after, outcome := t.TransformDescription(before)
		if outcome.Bypassed {
			stats.Bypassed++
		}
		if after == before {
			continue
		}

		row[DescriptionField] = after
		stats.Rewritten++

		rules := strings.Join(outcome.Rules, "+")
		if rules == "" {
			rules = ruleWhitespace
		}
		changes = append(changes, types.Change{
			Row:    i + 1,
			Point:  row[0],
			Before: before,
			After:  after,
			Rules:  rules,
		})
	}

	return out, changes, stats
}
