package triage

import (
	"regexp"
	"strings"
)

// negationWindow is the number of characters inspected on each side of a
// matched term when looking for a negation cue.
const negationWindow = 15

var negationCues = regexp.MustCompile(`(?i)\b(not|no|without|denies|denying|negating|free of)\b`)

// Negated reports whether the first occurrence of term in text sits inside a
// negated context ("no chest pain", "denies fever", ...). Only the first
// occurrence is checked: a later, non-negated mention of the same term is
// still treated as negated. That is a known precision limit of the window
// scan, kept deliberately.
func Negated(term, text string) bool {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(term))
	if idx < 0 {
		return false
	}
	start := idx - negationWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(term) + negationWindow
	if end > len(text) {
		end = len(text)
	}
	return negationCues.MatchString(text[start:end])
}
