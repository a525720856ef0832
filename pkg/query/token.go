// Package query provides the lexical view of an in-progress search query:
// a scanner producing keyword/term/text tokens and the cursor classification
// that decides which kind of completion applies at a given position.
package query

import (
	"strings"
	"unicode"
)

// Separator splits a field name from its value in keyword constructs.
const Separator = ":"

// ExistsOperator is the special field surfaced for existence checks.
const ExistsOperator = "_exists_"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// Keyword is a field-name-plus-separator construct, e.g. "http_method:".
	Keyword TokenType = iota
	// Term is a bare unquoted word.
	Term
	// Text is a quoted string literal, value includes the quotes.
	Text
)

func (t TokenType) String() string {
	switch t {
	case Keyword:
		return "keyword"
	case Term:
		return "term"
	case Text:
		return "text"
	}
	return "unknown"
}

// Token is one lexical unit of the query under edit. Immutable once produced.
type Token struct {
	Type  TokenType
	Value string
	Index int
	Start int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Start + len(t.Value)
}

// Tokenize scans a raw query string into tokens. Chunks are separated by
// whitespace; a chunk containing the separator yields a keyword token up to
// and including the separator, with any remainder emitted as a term. Quoted
// strings become a single text token.
func Tokenize(input string) []Token {
	var tokens []Token
	i := 0
	for i < len(input) {
		r := rune(input[i])
		if unicode.IsSpace(r) {
			i++
			continue
		}
		start := i
		if r == '"' {
			i++
			for i < len(input) && input[i] != '"' {
				if input[i] == '\\' && i+1 < len(input) {
					i++
				}
				i++
			}
			if i < len(input) {
				i++
			}
			tokens = appendToken(tokens, Text, input[start:i], start)
			continue
		}
		for i < len(input) && !unicode.IsSpace(rune(input[i])) && input[i] != '"' {
			i++
		}
		chunk := input[start:i]
		if sep := strings.Index(chunk, Separator); sep >= 0 {
			tokens = appendToken(tokens, Keyword, chunk[:sep+1], start)
			if rest := chunk[sep+1:]; rest != "" {
				tokens = appendToken(tokens, Term, rest, start+sep+1)
			}
			continue
		}
		tokens = appendToken(tokens, Term, chunk, start)
	}
	return tokens
}

func appendToken(tokens []Token, typ TokenType, value string, start int) []Token {
	return append(tokens, Token{
		Type:  typ,
		Value: value,
		Index: len(tokens),
		Start: start,
	})
}

// ContextAt locates the token under the cursor, the token immediately before
// it, and the literal prefix typed since the last token boundary. The cursor
// sits on a token when it falls inside its span or right at its end; in
// surrounding whitespace only the preceding token is reported.
func ContextAt(tokens []Token, pos int) (current, previous *Token, prefix string) {
	for i := range tokens {
		t := &tokens[i]
		if pos > t.Start && pos <= t.End() {
			current = t
			if i > 0 {
				previous = &tokens[i-1]
			}
			typed := t.Value[:pos-t.Start]
			// The separator counts as a boundary: right after "field:"
			// nothing of the value has been typed yet.
			if sep := strings.LastIndex(typed, Separator); sep >= 0 {
				typed = typed[sep+1:]
			}
			if t.Type == Text {
				typed = strings.TrimPrefix(typed, `"`)
			}
			return current, previous, typed
		}
		if t.End() <= pos {
			previous = t
		}
	}
	return nil, previous, ""
}
