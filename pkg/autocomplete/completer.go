// Package autocomplete turns raw query text and a cursor position into
// ranked, context-aware field-name and field-value suggestions. Completers
// are pluggable units registered with an Aggregator in order; each receives
// the shared token context and contributes its slice of the merged result.
package autocomplete

import (
	"context"

	"github.com/bastiangx/queryserve/pkg/query"
)

// Result is one suggestion payload handed back to the editor.
type Result struct {
	Name    string
	Value   string
	Caption string
	Score   int
	Meta    string
}

// Request carries the shared token context for one keystroke.
type Request struct {
	Tokens   []query.Token
	Current  *query.Token
	Previous *query.Token
	Prefix   string
	Limit    int
}

// NewRequest derives the token context from raw query text and a byte cursor
// position.
func NewRequest(input string, pos, limit int) Request {
	tokens := query.Tokenize(input)
	current, previous, prefix := query.ContextAt(tokens, pos)
	return Request{
		Tokens:   tokens,
		Current:  current,
		Previous: previous,
		Prefix:   prefix,
		Limit:    limit,
	}
}

// Classify runs the token classification for this request.
func (r Request) Classify() query.Classification {
	return query.Classify(r.Current, r.Previous, r.Prefix)
}

// Completer produces suggestions for the active edit position. A completer
// with nothing to offer returns an empty slice, not an error; errors are
// reserved for failed lookups.
type Completer interface {
	Complete(ctx context.Context, req Request) ([]Result, error)
}

// PopupAdvisor is optionally implemented by completers that want to override
// the default auto-show heuristic for the suggestion popup.
type PopupAdvisor interface {
	ShouldShow(tokens []query.Token, pos int) bool
}
