package autocomplete

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bastiangx/queryserve/pkg/query"
)

// advisingCompleter overrides the popup heuristic with a fixed verdict.
type advisingCompleter struct {
	show bool
}

func (a *advisingCompleter) Complete(_ context.Context, _ Request) ([]Result, error) {
	return nil, nil
}

func (a *advisingCompleter) ShouldShow(_ []query.Token, _ int) bool {
	return a.show
}

type plainCompleter struct {
	results []Result
	err     error
}

func (p *plainCompleter) Complete(_ context.Context, _ Request) ([]Result, error) {
	return p.results, p.err
}

func TestAggregatorPreservesRegistrationOrder(t *testing.T) {
	// The slow completer registered first must still contribute first.
	slow := &plainCompleterWithDelay{results: []Result{{Name: "A"}}, delay: 20 * time.Millisecond}
	fast := &plainCompleter{results: []Result{{Name: "B"}}}

	agg := NewAggregator(slow, fast)
	got := agg.Complete(context.Background(), "", 0, 0)

	want := []Result{{Name: "A"}, {Name: "B"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge order mismatch (-want +got):\n%s", diff)
	}
}

type plainCompleterWithDelay struct {
	results []Result
	delay   time.Duration
}

func (p *plainCompleterWithDelay) Complete(_ context.Context, _ Request) ([]Result, error) {
	time.Sleep(p.delay)
	return p.results, nil
}

func TestAggregatorIsolatesFailures(t *testing.T) {
	failing := &plainCompleter{err: errors.New("backend down")}
	healthy := &plainCompleter{results: []Result{{Name: "ok"}}}

	agg := NewAggregator(failing, healthy)
	got := agg.Complete(context.Background(), "", 0, 0)

	if len(got) != 1 || got[0].Name != "ok" {
		t.Errorf("results = %v, want only the healthy completer's", got)
	}
}

func TestAggregatorRegisterAppends(t *testing.T) {
	agg := NewAggregator(&plainCompleter{results: []Result{{Name: "first"}}})
	agg.Register(&plainCompleter{results: []Result{{Name: "second"}}})

	got := agg.Complete(context.Background(), "", 0, 0)
	if len(got) != 2 || got[0].Name != "first" || got[1].Name != "second" {
		t.Errorf("results = %v, want [first second]", got)
	}
}

func TestAggregatorShouldShow(t *testing.T) {
	testCases := []struct {
		name       string
		completers []Completer
		input      string
		want       bool
	}{
		{
			name:       "default heuristic after separator",
			completers: []Completer{&plainCompleter{}},
			input:      "http_method:",
			want:       true,
		},
		{
			name:       "default heuristic mid term",
			completers: []Completer{&plainCompleter{}},
			input:      "http_method:GE",
			want:       false,
		},
		{
			name:       "advisor can force the popup open",
			completers: []Completer{&advisingCompleter{show: true}},
			input:      "foo",
			want:       true,
		},
		{
			name:       "advisor declining does not veto the default",
			completers: []Completer{&advisingCompleter{show: false}, &plainCompleter{}},
			input:      "http_method:",
			want:       true,
		},
		{
			name:       "all advisors declining suppresses the popup",
			completers: []Completer{&advisingCompleter{show: false}},
			input:      "http_method:",
			want:       false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := NewAggregator(tc.completers...)
			tokens := query.Tokenize(tc.input)
			if got := agg.ShouldShow(tokens, len(tc.input)); got != tc.want {
				t.Errorf("ShouldShow(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
