package triage

import "testing"

func TestGreeting(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hi", true},
		{"Hello!", true},
		{"good morning", true},
		{"  Thanks  ", true},
		{"thank you so much", true},
		{"how are you?", true},
		{"I have a hip injury", false},
		{"my chest hurts", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			reply, ok := Greeting(tt.text)
			if ok != tt.want {
				t.Fatalf("Greeting(%q) ok = %v, want %v", tt.text, ok, tt.want)
			}
			if ok && reply == "" {
				t.Error("greeting matched but reply is empty")
			}
		})
	}
}

func TestGreetingLongestPhraseWins(t *testing.T) {
	reply, ok := Greeting("thank you")
	if !ok {
		t.Fatal("expected a greeting match")
	}
	for _, r := range greetingVariations["thank you"] {
		if reply == r {
			return
		}
	}
	t.Errorf("reply %q not from the %q variations", reply, "thank you")
}
