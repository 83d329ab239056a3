// =============================================================================
// Point Description Parser - Token Classifier
// =============================================================================
//
// Pure functions that classify description tokens:
//   - IsSizeToken: is the token a measurement size (1/2, 3/4', 1, 1/4")?
//   - CodeCount:   how many of the first two tokens are recognised codes?
//
// =============================================================================

package description

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
)

// Prefix characters attached to qualifier tokens.
const (
	// SizePrefix glues a measurement to its code (PCF \1/2).
	SizePrefix = `\`

	// TextPrefix marks a free-text qualifier (PCF /SIGN).
	TextPrefix = "/"
)

// sizePattern matches a mixed number, a bare fraction or a bare integer,
// optionally followed by a unit mark. Only the start of the token has to match.
var sizePattern = regexp.MustCompile(`^(?:\d+\s+\d+/\d+|\d+/\d+|\d+)["']?`)

// IsSizeToken reports whether token is a size. At most one leading
// backslash left by an earlier pass is ignored.
//
// EXAMPLES:
//   "1/2", "3/4'", "1", `1/4"`, `\1/2` -> true
//   "PCF", "ABC", ""                   -> false
func IsSizeToken(token string) bool {
	token = strings.TrimPrefix(token, SizePrefix)
	return sizePattern.MatchString(token)
}

// =============================================================================
// CODE COUNT
// =============================================================================

// Count is the number of recognised codes among the first two tokens.
type Count int

const (
	Zero Count = iota
	One
	Two
)

// String returns the lower-case name of the count.
func (c Count) String() string {
	switch c {
	case One:
		return "one"
	case Two:
		return "two"
	default:
		return "zero"
	}
}

// CodeCount counts how many of the first two tokens belong to either code set.
// Later tokens are never inspected. A nil vocabulary or token list yields Zero.
func CodeCount(tokens []string, vocab *vocabulary.Vocabulary) Count {
	if tokens == nil || vocab == nil {
		return Zero
	}

	n := 0
	for _, token := range tokens[:min(2, len(tokens))] {
		if vocab.IsCode(token) {
			n++
		}
	}

	return Count(n)
}

// hasPrefix reports whether token starts with any of the given prefixes.
func hasPrefix(token string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(token, p) {
			return true
		}
	}
	return false
}
