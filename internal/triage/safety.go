package triage

import (
	"fmt"
	"strings"
)

// dangerPhrases is the hard-coded list scanned before any other
// classification layer. A false negative here is costlier than a false
// positive anywhere else, so the scan is a plain case-insensitive substring
// check with no negation screening.
var dangerPhrases = []string{
	"chest pain",
	"can't breathe",
	"cannot breathe",
	"not breathing",
	"stopped breathing",
	"heart attack",
	"stroke",
	"seizure",
	"unconscious",
	"unresponsive",
	"anaphylaxis",
	"bleeding uncontrollably",
	"severe bleeding",
	"choking",
	"overdose",
	"suicidal",
}

// SafetyOverride short-circuits the pipeline for life-threatening phrases.
type SafetyOverride struct{}

func NewSafetyOverride() *SafetyOverride {
	return &SafetyOverride{}
}

// Check returns an Emergency result on the first danger phrase found, or nil
// when none is present.
func (s *SafetyOverride) Check(symptoms string, age *int, knownConditions []string) *TriageResult {
	lower := strings.ToLower(symptoms)
	for _, phrase := range dangerPhrases {
		if !strings.Contains(lower, phrase) {
			continue
		}
		reasons := []string{fmt.Sprintf("Life-threatening symptom detected: %s", phrase)}
		if age != nil && *age >= 65 {
			reasons = append(reasons, "Age >= 65 increases risk")
		}
		if len(knownConditions) > 0 {
			reasons = append(reasons, fmt.Sprintf("Known condition(s): %s increase risk", strings.Join(knownConditions, ", ")))
		}
		return &TriageResult{
			Level:           LevelEmergency,
			Score:           100,
			Reasons:         reasons,
			SuggestedAction: ActionFor(LevelEmergency),
			Source:          SourceSafetyOverride,
		}
	}
	return nil
}
