package triage

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Level is the urgency level assigned to a triage request, ordered by
// descending severity: Emergency > Urgent > PrimaryCare > Pharmacy > SelfCare.
type Level string

const (
	LevelEmergency   Level = "Emergency"
	LevelUrgent      Level = "Urgent"
	LevelPrimaryCare Level = "PrimaryCare"
	LevelPharmacy    Level = "Pharmacy"
	LevelSelfCare    Level = "SelfCare"
)

// Source identifies which classification layer produced a result.
type Source string

const (
	SourceSafetyOverride Source = "SafetyOverride"
	SourceRules          Source = "Rules"
	SourceML             Source = "ML"
)

// Category is the severity tier of a symptom rule. Tiers are evaluated in
// the fixed priority order red > urgent > primary > pharmacy.
type Category string

const (
	CategoryRed      Category = "red"
	CategoryUrgent   Category = "urgent"
	CategoryPrimary  Category = "primary"
	CategoryPharmacy Category = "pharmacy"
)

// categoryPriority is the explicit ordered tie-break table: the first
// category in this order with at least one match decides the level.
var categoryPriority = []Category{CategoryRed, CategoryUrgent, CategoryPrimary, CategoryPharmacy}

var categoryLevel = map[Category]Level{
	CategoryRed:      LevelEmergency,
	CategoryUrgent:   LevelUrgent,
	CategoryPrimary:  LevelPrimaryCare,
	CategoryPharmacy: LevelPharmacy,
}

// SymptomRule is one entry of the rule catalog. Immutable after load.
type SymptomRule struct {
	ID       string        `json:"id"`
	Category Category      `json:"category"`
	Keywords []string      `json:"keywords"`
	Patterns []string      `json:"patterns,omitempty"`
	Response LocalizedText `json:"response"`

	compiled []*regexp.Regexp
}

// LocalizedText accepts either a plain string or a language-keyed object in
// the catalog and always resolves to English (or the first language present).
type LocalizedText string

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = LocalizedText(s)
		return nil
	}
	var byLang map[string]string
	if err := json.Unmarshal(data, &byLang); err != nil {
		return fmt.Errorf("response must be a string or a language object")
	}
	if en, ok := byLang["en"]; ok {
		*t = LocalizedText(en)
		return nil
	}
	keys := make([]string, 0, len(byLang))
	for k := range byLang {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		*t = LocalizedText(byLang[keys[0]])
	}
	return nil
}

// DetectionMatch is one rule with the terms that survived negation
// screening. Created per classification call, never stored.
type DetectionMatch struct {
	Rule         *SymptomRule
	MatchedTerms []string
}

// TriageRequest is the input to the classification pipeline. Symptoms must
// be non-empty after trimming; the pipeline rejects it otherwise.
type TriageRequest struct {
	Symptoms        string   `json:"symptoms"`
	Age             *int     `json:"age,omitempty"`
	KnownConditions []string `json:"known_conditions,omitempty"`
}

// TriageResult is the normalized output of the pipeline, regardless of which
// layer produced it.
type TriageResult struct {
	Level           Level    `json:"recommended_level"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	SuggestedAction string   `json:"suggested_action"`
	Source          Source   `json:"source"`
}

// Audit is the persisted record of one triage interaction.
type Audit struct {
	ID                     uuid.UUID `json:"id"`
	ReceivedAt             time.Time `json:"received_at"`
	Symptoms               string    `json:"symptoms"`
	Age                    *int      `json:"age,omitempty"`
	KnownConditions        []string  `json:"known_conditions,omitempty"`
	RecommendedLevel       Level     `json:"recommended_level"`
	Score                  int       `json:"score"`
	Reasons                []string  `json:"reasons"`
	SuggestedAction        string    `json:"suggested_action"`
	HospitalRecommendation []byte    `json:"-"`
	Meta                   map[string]any
}

// AuditMessage is one direction of the exchange attached to an audit.
type AuditMessage struct {
	ID        uuid.UUID
	AuditID   uuid.UUID
	CreatedAt time.Time
	Direction string // "user" or "bot"
	Text      string
}

// suggestedActions is the fixed level→action table. It is the single source
// of user-facing action phrasing for every classification layer.
var suggestedActions = map[Level]string{
	LevelEmergency:   "Call emergency services or go to the nearest Emergency Department immediately.",
	LevelUrgent:      "Seek urgent care within a few hours. If symptoms worsen, go to the ER.",
	LevelPrimaryCare: "Book with your primary care provider or virtual care within 24-72 hours.",
	LevelPharmacy:    "Visit a pharmacy for advice or OTC remedies.",
	LevelSelfCare:    "Self-care at home; seek care if condition gets worse.",
}

// ActionFor returns the suggested action for a level, defaulting to the
// primary-care action for anything unknown.
func ActionFor(level Level) string {
	if a, ok := suggestedActions[level]; ok {
		return a
	}
	return suggestedActions[LevelPrimaryCare]
}
