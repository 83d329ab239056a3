package description

import (
	"testing"

	"github.com/ginjaninja78/point-description-parser/internal/vocabulary"
)

func TestIsSizeToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"1/2", true},
		{"3/4", true},
		{"1", true},
		{"12", true},
		{`1/4"`, true},
		{"1/2'", true},
		{"3/4'", true},
		{`\1/2`, true},
		{"5/8RB", true}, // prefix match tolerates trailing text
		{"1 1/2", true},
		{`\\1/2`, false},
		{"/1/2", false},
		{"PCF", false},
		{"ABC", false},
		{"", false},
		{`\`, false},
		{"X1/2", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsSizeToken(tt.token); got != tt.want {
				t.Errorf("IsSizeToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestCodeCount(t *testing.T) {
	vocab := vocabulary.New([]string{"PCF", "PTF"}, []string{"TREE", "SIGN", "MARKER"})

	tests := []struct {
		name   string
		tokens []string
		want   Count
	}{
		{"no codes", []string{"INVALID", "CODES"}, Zero},
		{"property only", []string{"PCF", "1/2"}, One},
		{"misc only", []string{"TREE", "INVALID"}, One},
		{"second position", []string{"1/4", "pcf"}, One},
		{"property and misc", []string{"PCF", "TREE"}, Two},
		{"two misc", []string{"SIGN", "marker"}, Two},
		{"code in third position ignored", []string{"FOO", "BAR", "PCF"}, Zero},
		{"single code token", []string{"PCF"}, One},
		{"empty", []string{}, Zero},
		{"nil", nil, Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeCount(tt.tokens, vocab); got != tt.want {
				t.Errorf("CodeCount(%q) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestCodeCount_NilVocabulary(t *testing.T) {
	if got := CodeCount([]string{"PCF", "TREE"}, nil); got != Zero {
		t.Errorf("CodeCount with nil vocabulary = %v, want zero", got)
	}
}

func TestCount_String(t *testing.T) {
	for c, want := range map[Count]string{Zero: "zero", One: "one", Two: "two"} {
		if got := c.String(); got != want {
			t.Errorf("Count(%d).String() = %q, want %q", c, got, want)
		}
	}
}
