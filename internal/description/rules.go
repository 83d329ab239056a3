// =============================================================================
// Point Description Parser - Rule Table
// =============================================================================
//
// The reordering rules are kept as ordered tables of (predicate, action)
// pairs. Order is significant: within a table the first matching rule wins.
//
// ONE-CODE TABLE (exactly one of the first two tokens is a code):
//   name            | predicate                                         | action
//   ----------------+---------------------------------------------------+---------------------------
//   property-size   | t0 property, t1 size, t1 not \-prefixed           | t1 = \t1
//   size-property   | t0 size, t1 property                              | t0 = \t0 (once), swap t0/t1
//   property-text   | t0 property, t1 not size, t1 not /- or \-prefixed | t1 = /t1
//   misc-text       | t0 misc, t1 not /- or \-prefixed                  | t1 = /t1
//
// TWO-CODE TABLES (both of the first two tokens are codes):
//   misc-first      | t0 property, t1 misc                              | swap t0/t1
//   then, when a third token exists:
//   third-size      | t2 size, t2 not \-prefixed                        | t2 = \t2
//   third-text      | t2 not size, not /- or \-prefixed                 | t2 = /t2
//
// Tokens past the third are never touched.
//
// =============================================================================

package description

import (
	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
)

// Rule names reported in an Outcome.
const (
	RulePropertySize = "property-size"
	RuleSizeProperty = "size-property"
	RulePropertyText = "property-text"
	RuleMiscText     = "misc-text"
	RuleMiscFirst    = "misc-first"
	RuleThirdSize    = "third-size"
	RuleThirdText    = "third-text"
)

// rule is one row of a rule table.
type rule struct {
	name  string
	match func(tokens []string, vocab *vocabulary.Vocabulary) bool
	apply func(tokens []string)
}

// oneCodeRules apply when exactly one of the first two tokens is a code.
// Callers guarantee len(tokens) >= 2.
var oneCodeRules = []rule{
	{
		name: RulePropertySize,
		match: func(t []string, v *vocabulary.Vocabulary) bool {
			return v.IsPropertyCorner(t[0]) && IsSizeToken(t[1]) && !hasPrefix(t[1], SizePrefix)
		},
		apply: func(t []string) {
			t[1] = SizePrefix + t[1]
		},
	},
	{
		name: RuleSizeProperty,
		match: func(t []string, v *vocabulary.Vocabulary) bool {
			return IsSizeToken(t[0]) && v.IsPropertyCorner(t[1])
		},
		apply: func(t []string) {
			size := t[0]
			if !hasPrefix(size, SizePrefix) {
				size = SizePrefix + size
			}
			t[0], t[1] = t[1], size
		},
	},
	{
		name: RulePropertyText,
		match: func(t []string, v *vocabulary.Vocabulary) bool {
			return v.IsPropertyCorner(t[0]) && !IsSizeToken(t[1]) && !hasPrefix(t[1], TextPrefix, SizePrefix)
		},
		apply: func(t []string) {
			t[1] = TextPrefix + t[1]
		},
	},
	{
		name: RuleMiscText,
		match: func(t []string, v *vocabulary.Vocabulary) bool {
			return v.IsMiscellaneous(t[0]) && !hasPrefix(t[1], TextPrefix, SizePrefix)
		},
		apply: func(t []string) {
			t[1] = TextPrefix + t[1]
		},
	},
}

// twoCodeOrderRules force the miscellaneous code ahead of the property code.
var twoCodeOrderRules = []rule{
	{
		name: RuleMiscFirst,
		match: func(t []string, v *vocabulary.Vocabulary) bool {
			return v.IsPropertyCorner(t[0]) && v.IsMiscellaneous(t[1])
		},
		apply: func(t []string) {
			t[0], t[1] = t[1], t[0]
		},
	},
}

// thirdTokenRules qualify the token following a code pair.
// Callers guarantee len(tokens) >= 3.
var thirdTokenRules = []rule{
	{
		name: RuleThirdSize,
		match: func(t []string, _ *vocabulary.Vocabulary) bool {
			return IsSizeToken(t[2]) && !hasPrefix(t[2], SizePrefix)
		},
		apply: func(t []string) {
			t[2] = SizePrefix + t[2]
		},
	},
	{
		name: RuleThirdText,
		match: func(t []string, _ *vocabulary.Vocabulary) bool {
			return !IsSizeToken(t[2]) && !hasPrefix(t[2], TextPrefix, SizePrefix)
		},
		apply: func(t []string) {
			t[2] = TextPrefix + t[2]
		},
	},
}

// applyFirst runs the first matching rule of table against tokens and
// returns its name, or "" when nothing matched.
func applyFirst(table []rule, tokens []string, vocab *vocabulary.Vocabulary) string {
	for _, r := range table {
		if r.match(tokens, vocab) {
			r.apply(tokens)
			return r.name
		}
	}
	return ""
}
