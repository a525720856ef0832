package autocomplete

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/queryserve/pkg/fields"
	"github.com/bastiangx/queryserve/pkg/query"
)

// ValueSuggestion is one historical value with its occurrence count.
type ValueSuggestion struct {
	Value      string
	Occurrence int
}

// LookupResponse is what the value-suggestion service answers for a
// {field, input} request. Input echoes the request so correction responses
// can be rendered against what the user actually typed.
type LookupResponse struct {
	Field             string
	Input             string
	Suggestions       []ValueSuggestion
	SumOtherDocsCount int
}

// ValueLookup is the external value-suggestion service. Lookups may fail;
// the failure is propagated, not swallowed.
type ValueLookup interface {
	SuggestFieldValues(ctx context.Context, field, input string) (LookupResponse, error)
}

// valueCache remembers the last lookup so consecutive keystrokes on the same
// field can narrow an already-exhausted result set without a round-trip.
type valueCache struct {
	valid       bool
	field       string
	input       string
	suggestions []ValueSuggestion
	hasMore     bool
}

// FieldValueCompleter suggests historical values for enumerable fields. The
// target field must be known to the catalog and carry the enumerable
// property, otherwise the completer resolves to empty without a lookup.
type FieldValueCompleter struct {
	catalog *fields.Catalog
	lookup  ValueLookup

	mu    sync.Mutex
	cache valueCache
}

// NewFieldValueCompleter builds a completer over the catalog and lookup
// service.
func NewFieldValueCompleter(catalog *fields.Catalog, lookup ValueLookup) *FieldValueCompleter {
	return &FieldValueCompleter{catalog: catalog, lookup: lookup}
}

// Complete returns value suggestions for the request, consulting the cache
// before issuing a lookup. A lookup failure is returned to the caller.
func (c *FieldValueCompleter) Complete(ctx context.Context, req Request) ([]Result, error) {
	cls := req.Classify()
	if cls.Kind != query.CompleteFieldValue {
		return nil, nil
	}
	field, input := cls.Field, cls.Input

	snapshot, activeQuery := c.catalog.ActiveView()
	mapping, ok := snapshot.Lookup(activeQuery, field)
	if !ok || !mapping.Type.HasProperty(fields.PropEnumerable) {
		return nil, nil
	}

	if cached, ok := c.fromCache(field, input); ok {
		log.Debugf("value cache narrows %q on field %q", input, field)
		return truncate(toResults(cached, input), req.Limit), nil
	}

	resp, err := c.lookup.SuggestFieldValues(ctx, field, input)
	if err != nil {
		return nil, fmt.Errorf("value lookup for field %q: %w", field, err)
	}

	c.mu.Lock()
	c.cache = valueCache{
		valid:       true,
		field:       field,
		input:       input,
		suggestions: resp.Suggestions,
		hasMore:     resp.SumOtherDocsCount > 0,
	}
	c.mu.Unlock()

	return truncate(toResults(resp.Suggestions, input), req.Limit), nil
}

// ShouldShow forces the popup open right after the separator is typed,
// before any value prefix exists.
func (c *FieldValueCompleter) ShouldShow(tokens []query.Token, pos int) bool {
	current, _, _ := query.ContextAt(tokens, pos)
	return current != nil && current.Type == query.Keyword &&
		strings.HasSuffix(current.Value, query.Separator) &&
		pos == current.End()
}

// fromCache reuses the previous result set when the new input extends the
// cached one and the service reported no further suggestions beyond it.
func (c *FieldValueCompleter) fromCache(field, input string) ([]ValueSuggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cache.valid || c.cache.field != field || c.cache.hasMore {
		return nil, false
	}
	if !strings.HasPrefix(input, c.cache.input) {
		return nil, false
	}
	var narrowed []ValueSuggestion
	for _, s := range c.cache.suggestions {
		if strings.HasPrefix(s.Value, input) {
			narrowed = append(narrowed, s)
		}
	}
	return narrowed, true
}

// toResults maps suggestions to results, preserving the response ordering.
// A suggestion that does not extend the typed input is a did-you-mean
// correction and gets an arrow caption instead of the plain value.
func toResults(suggestions []ValueSuggestion, input string) []Result {
	results := make([]Result, 0, len(suggestions))
	for _, s := range suggestions {
		caption := s.Value
		if input != "" && !strings.HasPrefix(s.Value, input) {
			caption = fmt.Sprintf("%s ⭢ %s", s.Value, input)
		}
		results = append(results, Result{
			Name:    s.Value,
			Value:   s.Value,
			Caption: caption,
			Score:   s.Occurrence,
			Meta:    fmt.Sprintf("%d hits", s.Occurrence),
		})
	}
	return results
}

func truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
