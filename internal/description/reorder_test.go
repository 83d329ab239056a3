package description

import (
	"slices"
	"strings"
	"testing"

	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
)

// ============================================================================
// Fixtures
// ============================================================================

func testVocabulary() *vocabulary.Vocabulary {
	return vocabulary.New([]string{"pcf", "ptf"}, []string{"TREE", "MARKER"})
}

func newTestReorderer(precedence Precedence) *Reorderer {
	policy := DefaultPolicy()
	policy.Precedence = precedence
	return NewReorderer(testVocabulary(), policy)
}

// ============================================================================
// Scenarios
// ============================================================================

func TestReorder_Scenarios(t *testing.T) {
	r := newTestReorderer(PrecedenceAbsolute)

	tests := []struct {
		in    string
		want  string
		rules []string
	}{
		{"PCF 1/2", `PCF \1/2`, []string{RulePropertySize}},
		{"1/4 PCF", `PCF \1/4`, []string{RuleSizeProperty}},
		{"PCF MARKER", "MARKER PCF", []string{RuleMiscFirst}},
		{"PCF MARKER 1/2", `MARKER PCF \1/2`, []string{RuleMiscFirst, RuleThirdSize}},
		{"PCF MARKER SIGN", "MARKER PCF /SIGN", []string{RuleMiscFirst, RuleThirdText}},
		{"TREE PCF 3/4", "TREE PCF 3/4", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, outcome := r.ReorderString(tt.in)
			if got != tt.want {
				t.Errorf("ReorderString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !slices.Equal(outcome.Rules, tt.rules) {
				t.Errorf("rules = %v, want %v", outcome.Rules, tt.rules)
			}
		})
	}
}

// ============================================================================
// One-code rules
// ============================================================================

func TestReorder_OneCodeRules(t *testing.T) {
	r := newTestReorderer(PrecedenceAbsolute)

	tests := []struct {
		name string
		in   string
		want string
		rule string
	}{
		{"a: property then size", "ptf 5/8", `ptf \5/8`, RulePropertySize},
		{"a: already prefixed size", `PCF \1/2`, `PCF \1/2`, ""},
		{"b: size then property", `3/4" PTF`, `PTF \3/4"`, RuleSizeProperty},
		{"b: prefixed size then property", `\1/2 PCF`, `PCF \1/2`, RuleSizeProperty},
		{"c: property then text", "PCF SIGN", "PCF /SIGN", RulePropertyText},
		{"c: text already slashed", "PCF /SIGN", "PCF /SIGN", ""},
		{"c: text already backslashed", `PCF \SIGN`, `PCF \SIGN`, ""},
		{"d: misc then text", "MARKER SIGN", "MARKER /SIGN", RuleMiscText},
		{"d: misc then size", "MARKER 1/2", "MARKER /1/2", RuleMiscText},
		{"d: misc then prefixed", `MARKER \1/2`, `MARKER \1/2`, ""},
		{"no rule: text then misc", "SIGN MARKER", "SIGN MARKER", ""},
		{"no rule: size then misc", "1/2 MARKER", "1/2 MARKER", ""},
		{"extra tokens preserved", "PCF 1/2 FOUND IRON", `PCF \1/2 FOUND IRON`, RulePropertySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := r.ReorderString(tt.in)
			if got != tt.want {
				t.Errorf("ReorderString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if outcome.Count != One {
				t.Errorf("Count = %v, want one", outcome.Count)
			}
			var rule string
			if len(outcome.Rules) > 0 {
				rule = outcome.Rules[0]
			}
			if rule != tt.rule {
				t.Errorf("rule = %q, want %q", rule, tt.rule)
			}
			if outcome.Changed != (tt.rule != "") {
				t.Errorf("Changed = %v, want %v", outcome.Changed, tt.rule != "")
			}
		})
	}
}

func TestReorder_OneCodeRuleOrder(t *testing.T) {
	// PCF is in both sets, so rules a and d both match; a must win.
	vocab := vocabulary.New([]string{"PCF"}, []string{"PCF", "SIGN"})
	r := NewReorderer(vocab, DefaultPolicy())

	got, outcome := r.ReorderString("PCF 2")
	if got != `PCF \2` {
		t.Errorf("got %q, want %q", got, `PCF \2`)
	}
	if outcome.Count != One {
		t.Errorf("Count = %v, want one", outcome.Count)
	}
	if outcome.Rules[0] != RulePropertySize {
		t.Errorf("rule = %q, want %q", outcome.Rules[0], RulePropertySize)
	}
}

// ============================================================================
// Two-code rules
// ============================================================================

func TestReorder_TwoCodeRules(t *testing.T) {
	vocab := vocabulary.New([]string{"PCF", "PTF"}, []string{"MARKER", "SIGN"})
	r := NewReorderer(vocab, DefaultPolicy())

	tests := []struct {
		in   string
		want string
	}{
		{"MARKER PCF", "MARKER PCF"},
		{"MARKER PCF 1/2", `MARKER PCF \1/2`},
		{"PCF PTF 1/2", `PCF PTF \1/2`},
		{"SIGN MARKER POST", "SIGN MARKER /POST"},
		{`PCF MARKER \1/2`, `MARKER PCF \1/2`},
		{"PCF MARKER /POST", "MARKER PCF /POST"},
		{"PCF MARKER POST 1/2 FOUND", "MARKER PCF /POST 1/2 FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, outcome := r.ReorderString(tt.in)
			if got != tt.want {
				t.Errorf("ReorderString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if outcome.Count != Two {
				t.Errorf("Count = %v, want two", outcome.Count)
			}
		})
	}
}

// ============================================================================
// Bypass
// ============================================================================

func TestReorder_BypassAbsolute(t *testing.T) {
	r := newTestReorderer(PrecedenceAbsolute)

	inputs := []string{
		"TREE PCF 3/4",
		"PCF TREE 1/2",
		"PCF 1/2 tree",
		"1/4 PCF Tree",
		"PCF MARKER TREE",
		"TREE",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, outcome := r.ReorderString(in)
			if got != in {
				t.Errorf("ReorderString(%q) = %q, want unchanged", in, got)
			}
			if !outcome.Bypassed {
				t.Error("expected Bypassed")
			}
			if outcome.Changed {
				t.Error("expected Changed = false")
			}
		})
	}
}

func TestReorder_BypassNone(t *testing.T) {
	r := newTestReorderer(PrecedenceNone)

	tests := []struct {
		in   string
		want string
	}{
		{"PCF TREE 1/2", `TREE PCF \1/2`},
		{"TREE PCF 3/4", `TREE PCF \3/4`},
		{"PCF TREE MARKER", "TREE PCF /MARKER"},
		// TREE leading a one-code description still blocks the one-code rules.
		{"TREE 1/2", "TREE 1/2"},
		{"PCF 1/2", `PCF \1/2`},
		// The guards match case exactly, so a lower-case tree is an
		// ordinary miscellaneous code.
		{"tree 1/2", "tree /1/2"},
		{"MARKER TREE 1/2", "MARKER TREE 1/2"},
		{"MARKER tree 1/2", `MARKER tree \1/2`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, outcome := r.ReorderString(tt.in)
			if got != tt.want {
				t.Errorf("ReorderString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if outcome.Bypassed {
				t.Error("Bypassed should never be set with precedence none")
			}
		})
	}
}

func TestReorder_CustomBypassTokens(t *testing.T) {
	r := NewReorderer(testVocabulary(), Policy{BypassTokens: []string{"shrub"}})

	if got, _ := r.ReorderString("PCF 1/2 SHRUB"); got != "PCF 1/2 SHRUB" {
		t.Errorf("got %q, want bypass", got)
	}
	// TREE is no longer a bypass token; it is still a misc code.
	if got, _ := r.ReorderString("PCF TREE 1/2"); got != `TREE PCF \1/2` {
		t.Errorf("got %q, want %q", got, `TREE PCF \1/2`)
	}
}

// ============================================================================
// Invariants
// ============================================================================

func TestReorder_ShortDescriptions(t *testing.T) {
	r := newTestReorderer(PrecedenceAbsolute)

	for _, in := range []string{"", "PCF", "1/2", "   "} {
		got, outcome := r.ReorderString(in)
		if got != strings.Join(strings.Fields(in), " ") {
			t.Errorf("ReorderString(%q) = %q", in, got)
		}
		if outcome.Changed || len(outcome.Rules) != 0 {
			t.Errorf("ReorderString(%q) fired rules %v", in, outcome.Rules)
		}
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	r := newTestReorderer(PrecedenceAbsolute)
	tokens := []string{"1/4", "PCF"}

	outcome := r.Reorder(tokens)

	if !slices.Equal(tokens, []string{"1/4", "PCF"}) {
		t.Errorf("input mutated: %v", tokens)
	}
	if !slices.Equal(outcome.Tokens, []string{"PCF", `\1/4`}) {
		t.Errorf("Tokens = %v", outcome.Tokens)
	}
}

func TestReorder_PreservesTokenCount(t *testing.T) {
	r := newTestReorderer(PrecedenceNone)

	inputs := []string{
		"PCF 1/2", "1/4 PCF", "PCF MARKER SIGN POST", "MARKER 1 2 3",
		"A B C", "PCF TREE 1/2 X Y",
	}
	for _, in := range inputs {
		tokens := strings.Fields(in)
		if got := r.Reorder(tokens).Tokens; len(got) != len(tokens) {
			t.Errorf("Reorder(%q) changed token count: %v", in, got)
		}
	}
}

func TestReorder_SecondPassIsStable(t *testing.T) {
	inputs := []string{
		"PCF 1/2", "1/4 PCF", "PCF MARKER", "PCF MARKER 1/2", "PCF MARKER SIGN",
		"PCF SIGN", "MARKER SIGN", "MARKER 1/2", `3/4" PTF`, "PTF PCF FOUND",
		"TREE PCF 3/4", "SIGN POST", "PCF",
	}

	for _, precedence := range []Precedence{PrecedenceAbsolute, PrecedenceNone} {
		r := newTestReorderer(precedence)
		for _, in := range inputs {
			once, _ := r.ReorderString(in)
			twice, outcome := r.ReorderString(once)
			if twice != once {
				t.Errorf("[%s] %q: first pass %q, second pass %q", precedence, in, once, twice)
			}
			if outcome.Changed {
				t.Errorf("[%s] %q: second pass reported a change", precedence, in)
			}
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		in      string
		want    Precedence
		wantErr bool
	}{
		{"", PrecedenceAbsolute, false},
		{"absolute", PrecedenceAbsolute, false},
		{" NONE ", PrecedenceNone, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePrecedence(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrecedence(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrecedence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
