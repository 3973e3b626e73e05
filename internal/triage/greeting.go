package triage

import (
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
)

// greetingVariations maps small-talk phrases to reply variations. Matching
// is word-boundary based; the longest matching phrase wins so "thank you"
// beats "thanks" when both apply.
var greetingVariations = map[string][]string{
	"hi": {
		"Hi there! How are you feeling today?",
		"Hey! What's on your mind health-wise?",
	},
	"hello": {
		"Hello! I'm here to listen. What symptoms would you like to share?",
		"Hello! How can I support you today?",
	},
	"hey": {
		"Hey! How are you feeling today?",
		"Hey there! Any symptoms bothering you?",
	},
	"thanks": {
		"You're very welcome! Take care of yourself.",
		"Happy to help! Stay healthy.",
	},
	"thank you": {
		"Glad I could help. How are you feeling now?",
		"Anytime! Wishing you a speedy recovery.",
	},
	"how are you": {
		"I'm doing well, thank you! How can I help with your health concerns today?",
		"I'm good! Hope you are too. What's troubling you?",
	},
	"good morning": {
		"Good morning! How are you doing today?",
		"Morning! Hope you're feeling well.",
	},
	"good afternoon": {
		"Good afternoon! What health concerns are on your mind?",
		"Good afternoon! How's your day going?",
	},
	"good evening": {
		"Good evening! How are you feeling tonight?",
		"Good evening! Any symptoms bothering you?",
	},
}

type greetingEntry struct {
	phrase  string
	re      *regexp.Regexp
	replies []string
}

var greetingEntries = buildGreetingEntries()

func buildGreetingEntries() []greetingEntry {
	entries := make([]greetingEntry, 0, len(greetingVariations))
	for phrase, replies := range greetingVariations {
		entries = append(entries, greetingEntry{
			phrase:  phrase,
			re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`),
			replies: replies,
		})
	}
	// Longest phrase first so the most specific greeting wins.
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].phrase) != len(entries[j].phrase) {
			return len(entries[i].phrase) > len(entries[j].phrase)
		}
		return entries[i].phrase < entries[j].phrase
	})
	return entries
}

// Greeting returns a small-talk reply when the message is a greeting rather
// than a symptom report. The pipeline is never invoked for these.
func Greeting(message string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(message))
	for _, e := range greetingEntries {
		if e.re.MatchString(text) {
			return e.replies[rand.IntN(len(e.replies))], true
		}
	}
	return "", false
}
