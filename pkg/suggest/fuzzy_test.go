package suggest

import "testing"

func TestSuggestCorrection(t *testing.T) {
	occurrences := map[string]int{
		"GET":         1000,
		"GEL":         1,
		"POST":        300,
		"example.org": 50,
	}
	c := NewCorrector(occurrences)

	testCases := []struct {
		name        string
		input       string
		want        string
		wantApplied bool
	}{
		{
			name:  "dropped character recovers the value",
			input: "exmple", want: "example.org", wantApplied: true,
		},
		{
			name:  "subsequence of a short value",
			input: "gt", want: "GET", wantApplied: true,
		},
		{
			name:  "occurrence breaks spelling ties",
			input: "ge", want: "GET", wantApplied: true,
		},
		{
			name:  "exact match is not a correction",
			input: "get", want: "GET", wantApplied: false,
		},
		{
			name:  "single character never corrected",
			input: "g", want: "g", wantApplied: false,
		},
		{
			name:  "wrong first letter gives up",
			input: "xet", want: "xet", wantApplied: false,
		},
		{
			name:  "nothing plausible gives up",
			input: "zzzz", want: "zzzz", wantApplied: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, applied := c.SuggestCorrection(tc.input)
			if got != tc.want || applied != tc.wantApplied {
				t.Errorf("SuggestCorrection(%q) = (%q, %v), want (%q, %v)",
					tc.input, got, applied, tc.want, tc.wantApplied)
			}
		})
	}
}

func TestSuggestCorrectionPrefersCloserLength(t *testing.T) {
	c := NewCorrector(map[string]int{
		"action":               10,
		"action_index_verbose": 10,
	})

	got, applied := c.SuggestCorrection("acti")
	if !applied || got != "action" {
		t.Errorf("SuggestCorrection(acti) = (%q, %v), want (action, true)", got, applied)
	}
}
