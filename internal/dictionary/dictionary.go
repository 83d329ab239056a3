// =============================================================================
// Point Description Parser - Replacement Dictionary
// =============================================================================
//
// The replacement dictionary is a JSON object mapping frequently mistyped
// descriptions to their standard form:
//
//   {
//     "PC F": "PCF",
//     "IRON ROD": "IR"
//   }
//
// Replacements are literal substring substitutions applied in file order.
// Each replacement runs over the result of the previous one, so a value may
// itself be matched by a later key. There is no re-scan after the last key.
//
// JSON is a subset of YAML, so the file is decoded into a yaml.v3 node tree
// to keep the key order that a Go map would lose.
//
// =============================================================================

package dictionary

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/types"
	"gopkg.in/yaml.v3"
)

// MinFields is the narrowest row the dictionary is applied to.
const MinFields = 5

// Replacement is one literal find-and-replace pair.
type Replacement struct {
	Old string
	New string
}

// Dictionary is an ordered list of replacements.
type Dictionary struct {
	Replacements []Replacement
	Path         string
}

// Len returns the number of replacements.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Replacements)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a dictionary file.
//
// PARAMETERS:
//   - path: The JSON file to read.
//
// RETURNS:
//   - The Dictionary with replacements in file order.
//   - An error if the file is missing, is not a JSON object, or has a
//     non-string value or an empty key.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	dict, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	dict.Path = path

	return dict, nil
}

// Parse decodes a dictionary document.
func Parse(data []byte) (*Dictionary, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document, want a JSON object")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: want a JSON object", root.Line)
	}

	dict := &Dictionary{}
	index := make(map[string]int, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("line %d: keys must be non-empty strings", key.Line)
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: value for %q must be a string", value.Line, key.Value)
		}

		// A repeated key keeps its first position and takes the last value.
		if at, ok := index[key.Value]; ok {
			dict.Replacements[at].New = value.Value
			continue
		}
		index[key.Value] = len(dict.Replacements)
		dict.Replacements = append(dict.Replacements, Replacement{Old: key.Value, New: value.Value})
	}

	return dict, nil
}

// =============================================================================
// APPLYING
// =============================================================================

// Replace runs every replacement over s in order.
func (d *Dictionary) Replace(s string) string {
	if d == nil {
		return s
	}
	for _, r := range d.Replacements {
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	return s
}

// Apply rewrites the last field of each row in place.
//
// PARAMETERS:
//   - table: The rows to rewrite.
//   - skip: Rows for which skip returns true (header rows) are left alone.
//     May be nil.
//
// RETURNS:
//   - The number of rows whose last field changed.
//
// Rows narrower than MinFields carry no description and are left alone.
func (d *Dictionary) Apply(table *types.Table, skip func(row []string) bool) int {
	if d.Len() == 0 || table == nil {
		return 0
	}

	changed := 0
	for _, row := range table.Rows {
		if len(row) < MinFields {
			continue
		}
		if skip != nil && skip(row) {
			continue
		}

		last := len(row) - 1
		if replaced := d.Replace(row[last]); replaced != row[last] {
			row[last] = replaced
			changed++
		}
	}

	return changed
}
