// =============================================================================
// Point Description Parser - Description Reorderer
// =============================================================================
//
// The Reorderer canonicalises one description:
//
//   STEP 0  Bypass: a description containing a bypass token (TREE by
//           default) is returned untouched when precedence is "absolute".
//   STEP 1  Fewer than two tokens: returned untouched.
//   STEP 2  One code among the first two tokens: first matching one-code rule.
//   STEP 3  Two codes: misc-first reorder, then third-token qualification.
//   STEP 4  Tokens are re-joined with single spaces.
//
// Tokens are only swapped or prefixed; none are added or removed.
//
// =============================================================================

package description

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
)

// =============================================================================
// POLICY
// =============================================================================

// Precedence controls how the bypass tokens interact with the rule tables.
type Precedence string

const (
	// PrecedenceAbsolute skips every rule when a bypass token is present.
	PrecedenceAbsolute Precedence = "absolute"

	// PrecedenceNone disables the bypass. Bypass tokens still block the
	// one-code rules when they lead the description, and block third-token
	// handling when they sit in second position after reordering. These two
	// guards match the token exactly, case included.
	PrecedenceNone Precedence = "none"
)

// ParsePrecedence validates a configured precedence value.
// An empty value selects PrecedenceAbsolute.
func ParsePrecedence(s string) (Precedence, error) {
	switch Precedence(strings.ToLower(strings.TrimSpace(s))) {
	case "", PrecedenceAbsolute:
		return PrecedenceAbsolute, nil
	case PrecedenceNone:
		return PrecedenceNone, nil
	default:
		return "", fmt.Errorf("unknown bypass precedence %q (want %q or %q)", s, PrecedenceAbsolute, PrecedenceNone)
	}
}

// Policy configures the bypass behaviour of a Reorderer.
type Policy struct {
	// BypassTokens exempt a description from reordering. Compared ignoring case.
	BypassTokens []string

	// Precedence selects how the bypass is applied.
	Precedence Precedence
}

// DefaultPolicy bypasses any description mentioning TREE.
func DefaultPolicy() Policy {
	return Policy{
		BypassTokens: []string{"TREE"},
		Precedence:   PrecedenceAbsolute,
	}
}

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome describes what the Reorderer did to one description.
type Outcome struct {
	// Tokens is the resulting token sequence.
	Tokens []string

	// Count is the number of codes among the first two input tokens.
	Count Count

	// Bypassed is true when a bypass token stopped all processing.
	Bypassed bool

	// Rules lists the rules that fired, in order.
	Rules []string

	// Changed is true when Tokens differs from the input.
	Changed bool
}

// String re-joins the tokens with single spaces.
func (o Outcome) String() string {
	return strings.Join(o.Tokens, " ")
}

// =============================================================================
// REORDERER
// =============================================================================

// Reorderer applies the rule tables against a fixed vocabulary.
// It holds no mutable state and is safe to share.
type Reorderer struct {
	vocab      *vocabulary.Vocabulary
	bypass     vocabulary.CodeSet
	guards     []string
	precedence Precedence
}

// NewReorderer creates a Reorderer for the given vocabulary and policy.
func NewReorderer(vocab *vocabulary.Vocabulary, policy Policy) *Reorderer {
	precedence := policy.Precedence
	if precedence == "" {
		precedence = PrecedenceAbsolute
	}

	var guards []string
	for _, token := range policy.BypassTokens {
		if token = strings.TrimSpace(token); token != "" {
			guards = append(guards, token)
		}
	}

	return &Reorderer{
		vocab:      vocab,
		bypass:     vocabulary.NewCodeSet(policy.BypassTokens...),
		guards:     guards,
		precedence: precedence,
	}
}

// Reorder processes one tokenised description. The input slice is not
// modified.
func (r *Reorderer) Reorder(tokens []string) Outcome {
	out := Outcome{Tokens: slices.Clone(tokens)}
	if out.Tokens == nil {
		out.Tokens = []string{}
	}

	// STEP 0: bypass.
	if r.precedence == PrecedenceAbsolute && slices.ContainsFunc(tokens, r.bypass.Contains) {
		out.Bypassed = true
		return out
	}

	// STEP 1: qualification.
	if len(tokens) < 2 {
		return out
	}
	out.Count = CodeCount(tokens, r.vocab)

	t := out.Tokens
	switch out.Count {
	case One:
		// STEP 2: one-code rules, first match only.
		if slices.Contains(r.guards, t[0]) {
			break
		}
		if name := applyFirst(oneCodeRules, t, r.vocab); name != "" {
			out.Rules = append(out.Rules, name)
		}

	case Two:
		// STEP 3a: misc code before property code.
		if name := applyFirst(twoCodeOrderRules, t, r.vocab); name != "" {
			out.Rules = append(out.Rules, name)
		}

		// STEP 3b: third token.
		if len(t) >= 3 && !slices.Contains(r.guards, t[1]) {
			if name := applyFirst(thirdTokenRules, t, r.vocab); name != "" {
				out.Rules = append(out.Rules, name)
			}
		}
	}

	out.Changed = !slices.Equal(tokens, out.Tokens)
	return out
}

// ReorderString splits description on whitespace, reorders it and re-joins
// the result with single spaces.
func (r *Reorderer) ReorderString(description string) (string, Outcome) {
	outcome := r.Reorder(strings.Fields(description))
	return outcome.String(), outcome
}
