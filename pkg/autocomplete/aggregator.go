package autocomplete

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/queryserve/pkg/query"
)

// Aggregator composes registered completers. Completers run concurrently but
// results are merged in registration order regardless of which lookup
// settles first, and the merge is emitted exactly once. A failing completer
// degrades to an empty contribution instead of aborting the whole merge.
type Aggregator struct {
	completers []Completer
}

// NewAggregator registers completers in suggestion order.
func NewAggregator(completers ...Completer) *Aggregator {
	return &Aggregator{completers: completers}
}

// Register appends a completer after the existing ones.
func (a *Aggregator) Register(c Completer) {
	a.completers = append(a.completers, c)
}

// Complete gathers the token context for the given query text and cursor and
// returns the merged suggestions.
func (a *Aggregator) Complete(ctx context.Context, input string, pos, limit int) []Result {
	return a.CompleteRequest(ctx, NewRequest(input, pos, limit))
}

// CompleteRequest fans the shared request out to every completer and
// concatenates their results preserving registration order.
func (a *Aggregator) CompleteRequest(ctx context.Context, req Request) []Result {
	buckets := make([][]Result, len(a.completers))

	var wg sync.WaitGroup
	for i, c := range a.completers {
		wg.Add(1)
		go func(i int, c Completer) {
			defer wg.Done()
			results, err := c.Complete(ctx, req)
			if err != nil {
				log.Warnf("completer %d failed, dropping its suggestions: %v", i, err)
				return
			}
			buckets[i] = results
		}(i, c)
	}
	wg.Wait()

	var merged []Result
	for _, b := range buckets {
		merged = append(merged, b...)
	}
	return merged
}

// ShouldShow decides whether the suggestion popup auto-opens. Completers
// overriding the popup advice are honored individually; everyone else falls
// back to the default heuristic. The verdict is the logical OR across
// completers.
func (a *Aggregator) ShouldShow(tokens []query.Token, pos int) bool {
	def := defaultShouldShow(tokens, pos)
	for _, c := range a.completers {
		if advisor, ok := c.(PopupAdvisor); ok {
			if advisor.ShouldShow(tokens, pos) {
				return true
			}
			continue
		}
		if def {
			return true
		}
	}
	return false
}

// defaultShouldShow holds when the cursor sits right after the separator of
// a keyword token.
func defaultShouldShow(tokens []query.Token, pos int) bool {
	current, _, _ := query.ContextAt(tokens, pos)
	return current != nil && current.Type == query.Keyword &&
		strings.HasSuffix(current.Value, query.Separator) &&
		pos == current.End()
}
