package autocomplete

import (
	"context"
	"strings"

	"github.com/bastiangx/queryserve/pkg/fields"
	"github.com/bastiangx/queryserve/pkg/query"
)

// Fields present in the active query partition must strictly outrank fields
// known only elsewhere, at every rank.
const (
	scoreActiveQuery = 12
	scoreOtherQuery  = 3
)

const notInStreamsMeta = "(not in streams)"

// FieldNameCompleter suggests field names matching the typed prefix,
// favoring fields observed in the currently active query. It is synchronous
// and pure given the current catalog snapshot; snapshot replacements are
// picked up on the next call.
type FieldNameCompleter struct {
	catalog *fields.Catalog
}

// NewFieldNameCompleter builds a completer over the given catalog.
func NewFieldNameCompleter(catalog *fields.Catalog) *FieldNameCompleter {
	return &FieldNameCompleter{catalog: catalog}
}

// Complete returns field-name suggestions for the request. The result is
// empty when the classification disallows field-name completion.
func (c *FieldNameCompleter) Complete(_ context.Context, req Request) ([]Result, error) {
	cls := req.Classify()
	if cls.Kind != query.CompleteFieldName {
		return nil, nil
	}
	prefix := cls.Input

	snapshot, activeQuery := c.catalog.ActiveView()
	partition := snapshot.Partition(activeQuery)
	inActive := make(map[string]bool, len(partition))
	for _, m := range partition {
		inActive[m.Name] = true
	}

	var active, other []Result
	seen := make(map[string]bool)
	for _, m := range union(snapshot.All, partition) {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		if prefix != "" && !strings.Contains(m.Name, prefix) {
			continue
		}
		r := Result{
			Name:    m.Name,
			Value:   m.Name + query.Separator,
			Caption: m.Name,
		}
		if inActive[m.Name] {
			r.Score = scoreActiveQuery
			active = append(active, r)
		} else {
			r.Score = scoreOtherQuery
			r.Meta = notInStreamsMeta
			other = append(other, r)
		}
	}

	results := append(active, other...)
	if strings.HasPrefix(prefix, "_e") {
		results = append([]Result{{
			Name:    query.ExistsOperator,
			Value:   query.ExistsOperator + query.Separator,
			Caption: query.ExistsOperator,
			Score:   scoreActiveQuery,
			Meta:    "operator",
		}}, results...)
	}
	return results, nil
}

func union(all, partition []fields.Mapping) []fields.Mapping {
	merged := make([]fields.Mapping, 0, len(all)+len(partition))
	merged = append(merged, all...)
	merged = append(merged, partition...)
	return merged
}
