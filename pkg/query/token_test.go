package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		input    string
		expected []Token
	}{
		{
			input: "http_method:GET",
			expected: []Token{
				{Type: Keyword, Value: "http_method:", Index: 0, Start: 0},
				{Type: Term, Value: "GET", Index: 1, Start: 12},
			},
		},
		{
			input: "http_method:",
			expected: []Token{
				{Type: Keyword, Value: "http_method:", Index: 0, Start: 0},
			},
		},
		{
			input: "foo bar",
			expected: []Token{
				{Type: Term, Value: "foo", Index: 0, Start: 0},
				{Type: Term, Value: "bar", Index: 1, Start: 4},
			},
		},
		{
			input: `message:"hello world"`,
			expected: []Token{
				{Type: Keyword, Value: "message:", Index: 0, Start: 0},
				{Type: Text, Value: `"hello world"`, Index: 1, Start: 8},
			},
		},
		{
			input: "source:example.org http_method:G",
			expected: []Token{
				{Type: Keyword, Value: "source:", Index: 0, Start: 0},
				{Type: Term, Value: "example.org", Index: 1, Start: 7},
				{Type: Keyword, Value: "http_method:", Index: 2, Start: 19},
				{Type: Term, Value: "G", Index: 3, Start: 31},
			},
		},
		{input: "   ", expected: nil},
		{input: "", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := Tokenize(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestContextAt(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		pos          int
		wantCurrent  string // token value, "" for nil
		wantPrevious string
		wantPrefix   string
	}{
		{
			name:  "mid term after keyword",
			input: "http_method:GE", pos: 14,
			wantCurrent: "GE", wantPrevious: "http_method:", wantPrefix: "GE",
		},
		{
			name:  "right after separator",
			input: "http_method:", pos: 12,
			wantCurrent: "http_method:", wantPrevious: "", wantPrefix: "",
		},
		{
			name:  "mid keyword",
			input: "http_method:GET", pos: 6,
			wantCurrent: "http_method:", wantPrevious: "", wantPrefix: "http_m",
		},
		{
			name:  "bare term",
			input: "sour", pos: 4,
			wantCurrent: "sour", wantPrevious: "", wantPrefix: "sour",
		},
		{
			name:  "in whitespace after keyword",
			input: "http_method: ", pos: 13,
			wantCurrent: "", wantPrevious: "http_method:", wantPrefix: "",
		},
		{
			name:  "start of input",
			input: "foo", pos: 0,
			wantCurrent: "", wantPrevious: "", wantPrefix: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			current, previous, prefix := ContextAt(Tokenize(tc.input), tc.pos)
			if got := tokenValue(current); got != tc.wantCurrent {
				t.Errorf("current = %q, want %q", got, tc.wantCurrent)
			}
			if got := tokenValue(previous); got != tc.wantPrevious {
				t.Errorf("previous = %q, want %q", got, tc.wantPrevious)
			}
			if prefix != tc.wantPrefix {
				t.Errorf("prefix = %q, want %q", prefix, tc.wantPrefix)
			}
		})
	}
}

func tokenValue(t *Token) string {
	if t == nil {
		return ""
	}
	return t.Value
}
