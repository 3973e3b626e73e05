package triage

import "testing"

func TestNegated(t *testing.T) {
	tests := []struct {
		name string
		term string
		text string
		want bool
	}{
		{"plain mention", "fever", "I have a fever", false},
		{"no before term", "fever", "no fever today", true},
		{"not before term", "chest pain", "it is not chest pain", true},
		{"denies", "fever", "patient denies fever", true},
		{"without", "cough", "without cough or cold", true},
		{"free of", "rash", "skin is free of rash", true},
		{"cue outside window", "fever", "no history of anything, but now a fever", false},
		{"cue after term inside window", "fever", "fever? no, gone now", true},
		{"term absent", "fever", "sore throat only", false},
		{"case insensitive", "Fever", "NO FEVER at all", true},
		{"cue must be whole word", "fever", "nothing about a fever here", false},
		{"first occurrence wins", "fever", "no fever earlier, fever now", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Negated(tt.term, tt.text); got != tt.want {
				t.Errorf("Negated(%q, %q) = %v, want %v", tt.term, tt.text, got, tt.want)
			}
		})
	}
}
