package cli

import (
	"context"
	"fmt"

	"github.com/c-bata/go-prompt"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/queryserve/pkg/autocomplete"
	"github.com/bastiangx/queryserve/pkg/query"
)

// Interactive runs a go-prompt REPL that drives the aggregator on every
// keystroke, the closest approximation of the search-bar experience in a
// terminal.
type Interactive struct {
	aggregator   *autocomplete.Aggregator
	suggestLimit int
}

// NewInteractive builds the REPL around an aggregator.
func NewInteractive(aggregator *autocomplete.Aggregator, limit int) *Interactive {
	return &Interactive{aggregator: aggregator, suggestLimit: limit}
}

// Run starts the prompt loop. It blocks until the user exits.
func (it *Interactive) Run() {
	log.Print("queryserve interactive (Tab completes, Ctrl+D exits)")
	p := prompt.New(
		it.execute,
		it.complete,
		prompt.OptionPrefix("query> "),
		prompt.OptionMaxSuggestion(uint16(it.suggestLimit)),
		prompt.OptionShowCompletionAtStart(),
	)
	p.Run()
}

// complete maps the prompt document onto an aggregator request. The cursor
// offset is the byte length of the text before it.
func (it *Interactive) complete(d prompt.Document) []prompt.Suggest {
	pos := len(d.TextBeforeCursor())
	req := autocomplete.NewRequest(d.Text, pos, it.suggestLimit)

	if !it.aggregator.ShouldShow(req.Tokens, pos) && req.Prefix == "" {
		return nil
	}

	results := it.aggregator.CompleteRequest(context.Background(), req)
	suggests := make([]prompt.Suggest, 0, len(results))
	for _, r := range results {
		desc := r.Caption
		if r.Meta != "" {
			desc = fmt.Sprintf("%s %s", r.Caption, r.Meta)
		}
		suggests = append(suggests, prompt.Suggest{Text: r.Value, Description: desc})
	}
	return suggests
}

// execute prints what the engine sees for the submitted query.
func (it *Interactive) execute(input string) {
	if input == "" {
		return
	}
	tokens := query.Tokenize(input)
	log.Printf("%d tokens:", len(tokens))
	for _, t := range tokens {
		log.Printf("  %-8s %q (at %d)", t.Type, t.Value, t.Start)
	}
}
