package triage

import (
	"strings"
	"testing"
)

func TestSafetyOverride(t *testing.T) {
	s := NewSafetyOverride()

	tests := []struct {
		name     string
		symptoms string
		hit      bool
	}{
		{"chest pain", "I have chest pain radiating to my arm", true},
		{"cannot breathe", "he cannot breathe properly", true},
		{"stroke", "I think my dad is having a stroke", true},
		{"overdose", "possible overdose on sleeping pills", true},
		{"uppercase", "CHEST PAIN and sweating", true},
		{"negation does not disarm", "no chest pain but dizzy", true},
		{"benign", "sore throat and sniffles", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Check(tt.symptoms, nil, nil)
			if (result != nil) != tt.hit {
				t.Fatalf("Check(%q) hit = %v, want %v", tt.symptoms, result != nil, tt.hit)
			}
			if result == nil {
				return
			}
			if result.Level != LevelEmergency || result.Score != 100 {
				t.Errorf("got level %s score %d, want Emergency 100", result.Level, result.Score)
			}
			if result.Source != SourceSafetyOverride {
				t.Errorf("got source %s, want SafetyOverride", result.Source)
			}
		})
	}
}

func TestSafetyOverrideRiders(t *testing.T) {
	s := NewSafetyOverride()
	age := 72

	result := s.Check("severe bleeding from the leg", &age, []string{"diabetes", "hypertension"})
	if result == nil {
		t.Fatal("expected an emergency result")
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}

	joined := strings.Join(result.Reasons, "\n")
	if !strings.Contains(joined, "Age >= 65") {
		t.Errorf("reasons missing age rider: %q", joined)
	}
	if !strings.Contains(joined, "diabetes, hypertension") {
		t.Errorf("reasons missing conditions rider: %q", joined)
	}
}
