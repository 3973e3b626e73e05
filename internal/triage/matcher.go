package triage

import "strings"

// Matcher scans free text against the rule catalog. It does no ranking;
// category priority is applied by the Composer.
type Matcher struct {
	rules []*SymptomRule
}

func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{rules: catalog.Rules()}
}

// Detect returns one DetectionMatch per rule with at least one non-negated
// keyword or pattern hit. Rules are evaluated in catalog order and matched
// terms are deduplicated per rule. Empty or whitespace-only text yields nil.
func (m *Matcher) Detect(text string) []DetectionMatch {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var found []DetectionMatch
	for _, rule := range m.rules {
		seen := make(map[string]struct{})
		var terms []string
		add := func(term string) {
			key := strings.ToLower(term)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			terms = append(terms, term)
		}

		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) && !Negated(kw, text) {
				add(kw)
			}
		}
		for _, re := range rule.compiled {
			for _, hit := range re.FindAllString(text, -1) {
				if !Negated(hit, text) {
					add(hit)
				}
			}
		}

		if len(terms) > 0 {
			found = append(found, DetectionMatch{Rule: rule, MatchedTerms: terms})
		}
	}
	return found
}
