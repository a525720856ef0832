// Package suggest is the value-suggestion backend: per-field patricia tries
// over historical values with occurrence counts, prefix retrieval ranked by
// occurrence, and a spelling-correction fallback for missed prefixes.
package suggest

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/queryserve/pkg/autocomplete"
)

// Options tune retrieval behavior.
type Options struct {
	// MaxResults caps how many suggestions one lookup returns.
	MaxResults int
	// MinOccurrence drops values seen fewer times than this.
	MinOccurrence int
	// EnableCorrection turns on the did-you-mean fallback.
	EnableCorrection bool
}

// DefaultOptions mirror the config defaults.
func DefaultOptions() Options {
	return Options{
		MaxResults:       10,
		MinOccurrence:    1,
		EnableCorrection: true,
	}
}

type fieldIndex struct {
	trie        *patricia.Trie
	occurrences map[string]int
}

// ValueIndex implements the value-suggestion service over in-memory tries.
// It satisfies autocomplete.ValueLookup.
type ValueIndex struct {
	mu     sync.RWMutex
	fields map[string]*fieldIndex
	opts   Options
}

// NewValueIndex creates an empty index.
func NewValueIndex(opts Options) *ValueIndex {
	return &ValueIndex{
		fields: make(map[string]*fieldIndex),
		opts:   opts,
	}
}

// Add records occurrences of a value under a field. Repeated adds for the
// same value accumulate.
func (ix *ValueIndex) Add(field, value string, occurrence int) {
	if value == "" || occurrence <= 0 {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	fi, ok := ix.fields[field]
	if !ok {
		fi = &fieldIndex{
			trie:        patricia.NewTrie(),
			occurrences: make(map[string]int),
		}
		ix.fields[field] = fi
	}
	fi.occurrences[value] += occurrence
	fi.trie.Insert(patricia.Prefix(value), fi.occurrences[value])
}

// FieldCount returns how many fields carry indexed values.
func (ix *ValueIndex) FieldCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.fields)
}

// SuggestFieldValues retrieves values matching the input prefix, ranked by
// occurrence. When the prefix matches nothing and correction is enabled, a
// corrected prefix is retried; the response still echoes the original input
// so callers can render the correction.
func (ix *ValueIndex) SuggestFieldValues(ctx context.Context, field, input string) (autocomplete.LookupResponse, error) {
	if err := ctx.Err(); err != nil {
		return autocomplete.LookupResponse{}, err
	}

	resp := autocomplete.LookupResponse{Field: field, Input: input}

	ix.mu.RLock()
	fi, ok := ix.fields[field]
	ix.mu.RUnlock()
	if !ok {
		return resp, nil
	}

	matches := ix.collect(fi, input)
	if len(matches) == 0 && ix.opts.EnableCorrection && len(input) >= 2 {
		corrector := NewCorrector(snapshotOccurrences(fi, &ix.mu))
		if corrected, fixed := corrector.SuggestCorrection(input); fixed && corrected != input {
			log.Debugf("corrected value prefix %q to %q on field %q", input, corrected, field)
			matches = ix.collect(fi, corrected)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Occurrence != matches[j].Occurrence {
			return matches[i].Occurrence > matches[j].Occurrence
		}
		return matches[i].Value < matches[j].Value
	})

	if max := ix.opts.MaxResults; max > 0 && len(matches) > max {
		for _, m := range matches[max:] {
			resp.SumOtherDocsCount += m.Occurrence
		}
		matches = matches[:max]
	}
	resp.Suggestions = matches
	return resp, nil
}

func (ix *ValueIndex) collect(fi *fieldIndex, prefix string) []autocomplete.ValueSuggestion {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var matches []autocomplete.ValueSuggestion
	err := fi.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		occ, ok := item.(int)
		if !ok {
			log.Errorf("unexpected item type %T for value %s", item, p)
			return nil
		}
		if occ < ix.opts.MinOccurrence {
			return nil
		}
		matches = append(matches, autocomplete.ValueSuggestion{
			Value:      string(p),
			Occurrence: occ,
		})
		return nil
	})
	if err != nil {
		log.Errorf("visiting value trie subtree: %v", err)
		return nil
	}
	return matches
}

func snapshotOccurrences(fi *fieldIndex, mu *sync.RWMutex) map[string]int {
	mu.RLock()
	defer mu.RUnlock()
	snap := make(map[string]int, len(fi.occurrences))
	for v, occ := range fi.occurrences {
		snap[v] = occ
	}
	return snap
}
