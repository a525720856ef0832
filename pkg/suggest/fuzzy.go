package suggest

import (
	"sort"
	"strings"

	"github.com/bastiangx/queryserve/internal/utils"
)

// Scoring for approximate matches. Preference order works out to:
// exact match > most frequent value > closest spelling.
const (
	firstCharMatchBonus            = 15
	adjacentMatchBonus             = 10
	separatorMatchBonus            = 12
	camelCaseMatchBonus            = 12
	unmatchedLeadingCharPenalty    = -3
	maxUnmatchedLeadingCharPenalty = -9
)

// Corrector proposes a likely intended value for a mistyped prefix, used as
// the did-you-mean fallback when a prefix matches nothing in the index.
type Corrector struct {
	values      []string
	occurrences map[string]int
}

// NewCorrector builds a corrector over the given value occurrence counts.
func NewCorrector(occurrences map[string]int) *Corrector {
	values := make([]string, 0, len(occurrences))
	for v := range occurrences {
		values = append(values, v)
	}
	return &Corrector{values: values, occurrences: occurrences}
}

// SuggestCorrection returns the most likely correction for the input and
// whether a correction was applied. Inputs shorter than two characters are
// never corrected.
func (c *Corrector) SuggestCorrection(input string) (string, bool) {
	if len(input) < 2 {
		return input, false
	}

	lowerInput := strings.ToLower(input)
	for _, v := range c.values {
		if strings.ToLower(v) == lowerInput {
			return v, false
		}
	}

	matches := c.findMatches(lowerInput)
	for i := range matches {
		if occ := c.occurrences[matches[i].value]; occ > 0 {
			// Log-ish scale so occurrence does not dominate spelling.
			matches[i].score += min(occ/10, 30)
		}
		lengthDiff := len(matches[i].value) - len(input)
		if lengthDiff < 0 {
			lengthDiff = -lengthDiff
		}
		matches[i].score -= lengthDiff * 2
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > 0 {
		return matches[0].value, true
	}
	return input, false
}

type fuzzyMatch struct {
	value   string
	score   int
	matched []int
}

func (c *Corrector) findMatches(pattern string) []fuzzyMatch {
	if len(pattern) == 0 {
		return nil
	}

	var matches []fuzzyMatch
	patternRunes := []rune(pattern)

	for _, candidate := range c.values {
		lower := strings.ToLower(candidate)
		// First-letter heuristic: a wrong first character is almost never
		// a typo worth correcting across.
		if len(pattern) > 1 && len(lower) > 0 && pattern[0] != lower[0] {
			continue
		}

		m := fuzzyMatch{
			value:   candidate,
			matched: make([]int, 0, len(patternRunes)),
		}
		if runFuzzyMatch(patternRunes, lower, &m) {
			m.score += len(m.matched) - len([]rune(lower))
			matches = append(matches, m)
		}
	}
	return matches
}

// runFuzzyMatch tests whether pattern matches the candidate and accumulates
// a score. Returns true on a full pattern match.
func runFuzzyMatch(pattern []rune, candidate string, m *fuzzyMatch) bool {
	candidateRunes := []rune(candidate)

	var last rune
	var lastIndex int
	var currAdjacentBonus int
	patternIndex := 0
	bestScore := -1
	matchedIndex := -1

	for i := 0; i < len(candidateRunes); i++ {
		curr := candidateRunes[i]

		if utils.EqualFold(curr, pattern[patternIndex]) {
			score := 0
			if i == 0 {
				score += firstCharMatchBonus
			}
			if i > 0 && last >= 'a' && last <= 'z' && curr >= 'A' && curr <= 'Z' {
				score += camelCaseMatchBonus
			}
			if i > 0 && utils.IsSeparator(last) {
				score += separatorMatchBonus
			}
			if len(m.matched) > 0 {
				lastMatch := m.matched[len(m.matched)-1]
				bonus := 0
				if lastIndex == lastMatch {
					bonus = currAdjacentBonus*2 + adjacentMatchBonus
					currAdjacentBonus = bonus
				} else {
					currAdjacentBonus = 0
				}
				score += bonus
			}
			if score > bestScore {
				bestScore = score
				matchedIndex = i
			}

			var nextCandidateRune rune
			if i < len(candidateRunes)-1 {
				nextCandidateRune = candidateRunes[i+1]
			}
			// Defer the commit while the same pattern rune could still match
			// the next candidate rune, keeping the best-scoring position.
			if !utils.EqualFold(nextCandidateRune, pattern[patternIndex]) {
				if matchedIndex > -1 {
					if len(m.matched) == 0 {
						penalty := matchedIndex * unmatchedLeadingCharPenalty
						bestScore += max(penalty, maxUnmatchedLeadingCharPenalty)
					}
					m.score += bestScore
					m.matched = append(m.matched, matchedIndex)
					bestScore = -1
					patternIndex++
				}
			}
		}

		last = curr
		lastIndex = i

		if patternIndex >= len(pattern) {
			return true
		}
	}
	return patternIndex >= len(pattern)
}
