// =============================================================================
// Point Description Parser - Code Vocabulary
// =============================================================================
//
// This module loads the two code vocabularies used to classify description
// tokens:
//   - Property-corner codes (e.g. PCF, RBF), lower-cased on load
//   - Miscellaneous codes (e.g. MARKER, TREE), kept as written
//
// Each source is a plain text file with one code per line. Membership tests
// are always case-insensitive: every member is stored with a folded key that
// is computed once at load time, so classification only folds the token.
//
// =============================================================================

package vocabulary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// ErrEmptyVocabulary is returned by Check when a vocabulary has no codes.
// Running the reorderer against it would silently leave every description
// untouched.
var ErrEmptyVocabulary = errors.New("code vocabulary is empty")

// =============================================================================
// CONFIG ERROR
// =============================================================================

// ConfigError reports a code source that is missing or unreadable.
type ConfigError struct {
	// Role is "property_corners" or "miscellaneous".
	Role string

	// Path is the file that failed to load.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("load %s codes from %q: %v", e.Role, e.Path, e.Err)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CODE SET
// =============================================================================

// CodeSet is an immutable set of codes with case-insensitive membership.
type CodeSet struct {
	codes []string
	keys  map[string]struct{}
}

// NewCodeSet builds a CodeSet from the given codes. Blank entries are
// dropped and duplicates (after folding) are kept once.
func NewCodeSet(codes ...string) CodeSet {
	set := CodeSet{keys: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		key := Fold(code)
		if _, ok := set.keys[key]; ok {
			continue
		}
		set.keys[key] = struct{}{}
		set.codes = append(set.codes, code)
	}
	return set
}

// Contains reports whether token matches any code, ignoring case.
func (s CodeSet) Contains(token string) bool {
	if len(s.keys) == 0 {
		return false
	}
	_, ok := s.keys[Fold(token)]
	return ok
}

// Len returns the number of distinct codes.
func (s CodeSet) Len() int {
	return len(s.codes)
}

// Codes returns the codes in load order, as stored.
func (s CodeSet) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Fold returns the case-folded comparison key for s.
// A fresh Caser is used per call since Casers carry state.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// =============================================================================
// VOCABULARY
// =============================================================================

// Vocabulary holds both code sets. It is read-only once loaded and may be
// shared between processing calls.
type Vocabulary struct {
	PropertyCorners CodeSet
	Miscellaneous   CodeSet
}

// New builds a Vocabulary from in-memory code lists, applying the same
// normalisation as Load (property-corner codes are lower-cased).
func New(propertyCorners, miscellaneous []string) *Vocabulary {
	lowered := make([]string, len(propertyCorners))
	for i, code := range propertyCorners {
		lowered[i] = strings.ToLower(strings.TrimSpace(code))
	}
	return &Vocabulary{
		PropertyCorners: NewCodeSet(lowered...),
		Miscellaneous:   NewCodeSet(miscellaneous...),
	}
}

// IsPropertyCorner reports whether token is a property-corner code.
func (v *Vocabulary) IsPropertyCorner(token string) bool {
	return v.PropertyCorners.Contains(token)
}

// IsMiscellaneous reports whether token is a miscellaneous code.
func (v *Vocabulary) IsMiscellaneous(token string) bool {
	return v.Miscellaneous.Contains(token)
}

// IsCode reports whether token belongs to either set.
func (v *Vocabulary) IsCode(token string) bool {
	return v.IsPropertyCorner(token) || v.IsMiscellaneous(token)
}

// Check returns ErrEmptyVocabulary if either set is empty.
func (v *Vocabulary) Check() error {
	if v == nil || v.PropertyCorners.Len() == 0 {
		return fmt.Errorf("property corners: %w", ErrEmptyVocabulary)
	}
	if v.Miscellaneous.Len() == 0 {
		return fmt.Errorf("miscellaneous: %w", ErrEmptyVocabulary)
	}
	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads both code sources.
//
// PARAMETERS:
//   - propertyCornersPath: one property-corner code per line.
//   - miscellaneousPath: one miscellaneous code per line.
//
// RETURNS:
//   - The loaded Vocabulary. On failure this is an empty, non-nil Vocabulary.
//   - A *ConfigError if either source cannot be read.
func Load(propertyCornersPath, miscellaneousPath string) (*Vocabulary, error) {
	propertyCorners, err := readLines(propertyCornersPath)
	if err != nil {
		return &Vocabulary{}, &ConfigError{Role: "property_corners", Path: propertyCornersPath, Err: err}
	}

	miscellaneous, err := readLines(miscellaneousPath)
	if err != nil {
		return &Vocabulary{}, &ConfigError{Role: "miscellaneous", Path: miscellaneousPath, Err: err}
	}

	return New(propertyCorners, miscellaneous), nil
}

// readLines opens path and returns its lines.
func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("no path configured")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCodes(file)
}

// ReadCodes returns one trimmed code per non-blank line of r.
func ReadCodes(r io.Reader) ([]string, error) {
	var codes []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return codes, nil
}
