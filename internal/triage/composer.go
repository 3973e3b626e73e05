package triage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Category base weights for rule-path scoring.
var categoryWeights = map[Category]int{
	CategoryRed:      50,
	CategoryUrgent:   30,
	CategoryPrimary:  10,
	CategoryPharmacy: 5,
}

// mlScores maps a model-predicted level to its base score.
var mlScores = map[Level]int{
	LevelEmergency:   100,
	LevelUrgent:      90,
	LevelPrimaryCare: 80,
	LevelPharmacy:    60,
	LevelSelfCare:    20,
}

const defaultClassifierAge = 45

// Composer merges the safety override, the rule matcher and the optional ML
// classifier into one normalized result. Decision order is fixed and
// terminal at the first layer that answers:
//
//  1. safety override
//  2. rule matches, highest-priority category wins
//  3. ML classifier
//  4. self-care floor
type Composer struct {
	safety     *SafetyOverride
	matcher    *Matcher
	classifier Classifier
	logger     *slog.Logger
}

func NewComposer(safety *SafetyOverride, matcher *Matcher, classifier Classifier, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	if classifier == nil {
		classifier = UnavailableClassifier()
	}
	return &Composer{
		safety:     safety,
		matcher:    matcher,
		classifier: classifier,
		logger:     logger,
	}
}

// Classify runs the layered pipeline. It performs no I/O except the bounded
// classifier call and never mutates its input.
func (c *Composer) Classify(ctx context.Context, req TriageRequest) TriageResult {
	if result := c.safety.Check(req.Symptoms, req.Age, req.KnownConditions); result != nil {
		return *result
	}

	detected := c.matcher.Detect(req.Symptoms)
	if len(detected) > 0 {
		return c.fromRules(detected, req)
	}

	if result, ok := c.fromClassifier(ctx, req); ok {
		return result
	}

	return compose(LevelSelfCare, 20, []string{"No recognized symptoms detected"}, SourceRules)
}

// fromRules scores grouped detections. The first non-empty category in
// priority order decides the level, regardless of match counts elsewhere.
func (c *Composer) fromRules(detected []DetectionMatch, req TriageRequest) TriageResult {
	byCategory := make(map[Category][]DetectionMatch)
	for _, match := range detected {
		byCategory[match.Rule.Category] = append(byCategory[match.Rule.Category], match)
	}

	for _, cat := range categoryPriority {
		matches := byCategory[cat]
		if len(matches) == 0 {
			continue
		}

		var score int
		var reasons []string
		for _, m := range matches {
			reasons = append(reasons, fmt.Sprintf("%s: %s (%s)", categoryLevel[cat], m.Rule.ID, strings.Join(m.MatchedTerms, ", ")))
		}

		switch cat {
		case CategoryRed:
			score = categoryWeights[cat] + 20
		case CategoryUrgent:
			score = categoryWeights[cat] * len(matches)
			if req.Age != nil && *req.Age >= 65 {
				reasons = append(reasons, "Age >= 65 increases urgency")
				score += 10
			}
			if len(req.KnownConditions) > 0 {
				reasons = append(reasons, fmt.Sprintf("Known condition(s): %s increase risk", strings.Join(req.KnownConditions, ", ")))
				score += 10
			}
		default:
			score = categoryWeights[cat] * len(matches)
		}

		return compose(categoryLevel[cat], score, reasons, SourceRules)
	}

	// Unreachable with a valid catalog; kept as an explicit floor.
	return compose(LevelPrimaryCare, 20, []string{"Input unclear; defaulting to primary care"}, SourceRules)
}

func (c *Composer) fromClassifier(ctx context.Context, req TriageRequest) (TriageResult, bool) {
	age := defaultClassifierAge
	if req.Age != nil {
		age = *req.Age
	}

	class, err := c.classifier.Predict(ctx, req.Symptoms, age, 1)
	if err != nil {
		c.logger.Warn("classifier fallback to rules", "error", err)
		return TriageResult{}, false
	}

	level := LevelForClass(class)
	score := mlScores[level]
	reasons := []string{fmt.Sprintf("Classifier prediction based on: %q", req.Symptoms)}
	if req.Age != nil && *req.Age >= 65 {
		reasons = append(reasons, "Age >= 65 increases risk")
		score += 10
	}
	if len(req.KnownConditions) > 0 {
		reasons = append(reasons, fmt.Sprintf("Known conditions: %s increase risk", strings.Join(req.KnownConditions, ", ")))
		score += 10
	}

	return compose(level, score, reasons, SourceML), true
}

// compose builds the final result; the suggested action always comes from
// the fixed level table so phrasing is identical across layers.
func compose(level Level, score int, reasons []string, source Source) TriageResult {
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return TriageResult{
		Level:           level,
		Score:           score,
		Reasons:         reasons,
		SuggestedAction: ActionFor(level),
		Source:          source,
	}
}
