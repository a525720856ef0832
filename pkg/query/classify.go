package query

import "strings"

// CompletionKind is the kind of completion applicable at the cursor.
type CompletionKind int

const (
	// CompleteNone suppresses completion (cursor mid-identifier).
	CompleteNone CompletionKind = iota
	// CompleteFieldName offers field-name suggestions.
	CompleteFieldName
	// CompleteFieldValue offers value suggestions for a known field.
	CompleteFieldValue
)

// Classification is the outcome of inspecting the token stream around the
// cursor. It is recomputed on every keystroke, never cached.
type Classification struct {
	Kind CompletionKind
	// Field is the target field for value completion.
	Field string
	// Input is the value prefix typed so far (value completion) or the
	// partial field name (name completion).
	Input string
}

// Classify decides what kind of completion applies given the token at the
// cursor, the token immediately preceding it, and the prefix typed since the
// last token boundary.
func Classify(current, previous *Token, prefix string) Classification {
	if (current == nil || current.Type == Term || current.Type == Text) &&
		previous != nil && isFieldKeyword(previous) {
		return Classification{
			Kind:  CompleteFieldValue,
			Field: strings.TrimSuffix(previous.Value, Separator),
			Input: prefix,
		}
	}
	if current != nil && current.Type == Keyword {
		// An empty prefix means the cursor sits right after the separator;
		// anything else is a mid-identifier edit inside the field name.
		if isFieldKeyword(current) && prefix == "" {
			return Classification{
				Kind:  CompleteFieldValue,
				Field: strings.TrimSuffix(current.Value, Separator),
				Input: prefix,
			}
		}
		return Classification{Kind: CompleteNone}
	}
	return Classification{Kind: CompleteFieldName, Input: prefix}
}

// isFieldKeyword reports whether the token is a keyword naming a field,
// i.e. its value ends in the separator.
func isFieldKeyword(t *Token) bool {
	return t.Type == Keyword && strings.HasSuffix(t.Value, Separator)
}
