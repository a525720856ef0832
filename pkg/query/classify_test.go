package query

import "testing"

func TestClassify(t *testing.T) {
	keyword := func(v string) *Token { return &Token{Type: Keyword, Value: v} }
	term := func(v string) *Token { return &Token{Type: Term, Value: v} }

	testCases := []struct {
		name     string
		current  *Token
		previous *Token
		prefix   string
		want     Classification
	}{
		{
			name:    "term after field keyword is value completion",
			current: term("GE"), previous: keyword("http_method:"), prefix: "GE",
			want: Classification{Kind: CompleteFieldValue, Field: "http_method", Input: "GE"},
		},
		{
			name:    "no token after field keyword is value completion",
			current: nil, previous: keyword("http_method:"), prefix: "",
			want: Classification{Kind: CompleteFieldValue, Field: "http_method", Input: ""},
		},
		{
			name:    "cursor on keyword ending in separator",
			current: keyword("http_method:"), previous: nil, prefix: "",
			want: Classification{Kind: CompleteFieldValue, Field: "http_method", Input: ""},
		},
		{
			name:    "cursor mid keyword suppresses completion",
			current: keyword("http_method:"), previous: nil, prefix: "http_m",
			want: Classification{Kind: CompleteNone},
		},
		{
			name:    "bare term is field name completion",
			current: term("sour"), previous: nil, prefix: "sour",
			want: Classification{Kind: CompleteFieldName, Input: "sour"},
		},
		{
			name:    "empty input is field name completion",
			current: nil, previous: nil, prefix: "",
			want: Classification{Kind: CompleteFieldName, Input: ""},
		},
		{
			name:    "term after plain term is field name completion",
			current: term("bar"), previous: term("foo"), prefix: "bar",
			want: Classification{Kind: CompleteFieldName, Input: "bar"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.current, tc.previous, tc.prefix)
			if got != tc.want {
				t.Errorf("Classify() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
