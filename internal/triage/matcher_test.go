package triage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testMatcher(t *testing.T) *Matcher {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	return NewMatcher(catalog)
}

func TestMatcherDetect(t *testing.T) {
	m := testMatcher(t)

	tests := []struct {
		name      string
		text      string
		wantRules []string
	}{
		{"keyword hit", "I have a high fever and chills", []string{"high_fever"}},
		{"pattern hit", "she vomited blood this morning", []string{"internal_bleeding"}},
		{"numeric fever pattern", "fever of 39.5 since last night", []string{"high_fever"}},
		{"multiple rules", "runny nose, sore throat and heartburn", []string{"common_cold", "indigestion"}},
		{"negated keyword skipped", "no high fever, just tired", nil},
		{"unrecognized text", "mild headache", nil},
		{"empty text", "   ", nil},
		{"case insensitive", "SEVERE ABDOMINAL PAIN for an hour", []string{"severe_abdominal_pain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, match := range m.Detect(tt.text) {
				got = append(got, match.Rule.ID)
			}
			if diff := cmp.Diff(tt.wantRules, got); diff != "" {
				t.Errorf("Detect(%q) rules mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestMatcherDedupesTerms(t *testing.T) {
	m := testMatcher(t)

	matches := m.Detect("runny nose, still a runny nose and sneezing")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	want := []string{"runny nose", "sneezing"}
	if diff := cmp.Diff(want, matches[0].MatchedTerms); diff != "" {
		t.Errorf("matched terms mismatch (-want +got):\n%s", diff)
	}
}
