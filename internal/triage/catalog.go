package triage

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

//go:embed data/symptoms.json
var catalogFS embed.FS

// ErrCatalogInvalid is returned when the rule catalog fails schema validation.
var ErrCatalogInvalid = errors.New("symptom catalog invalid")

var validCategories = map[Category]bool{
	CategoryRed:      true,
	CategoryUrgent:   true,
	CategoryPrimary:  true,
	CategoryPharmacy: true,
}

// Catalog is the ordered, immutable set of symptom rules. Loaded once at
// process start; safe for unsynchronized concurrent reads afterwards.
type Catalog struct {
	rules []*SymptomRule
}

// Rules returns the rules in catalog order.
func (c *Catalog) Rules() []*SymptomRule { return c.rules }

// Len returns the number of rules.
func (c *Catalog) Len() int { return len(c.rules) }

// DefaultCatalog loads the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	data, err := catalogFS.ReadFile("data/symptoms.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return parseCatalog(data)
}

// LoadCatalog loads a catalog from path, falling back to the embedded one
// when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var rules []*SymptomRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
	}

	for i, rule := range rules {
		if err := validateRule(i, rule); err != nil {
			return nil, err
		}
		for j, kw := range rule.Keywords {
			rule.Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q pattern %q: %v", ErrCatalogInvalid, rule.ID, pattern, err)
			}
			rule.compiled = append(rule.compiled, re)
		}
	}
	return &Catalog{rules: rules}, nil
}

func validateRule(i int, rule *SymptomRule) error {
	if rule.ID == "" {
		return fmt.Errorf("%w: rule %d: missing id", ErrCatalogInvalid, i)
	}
	if !validCategories[rule.Category] {
		return fmt.Errorf("%w: rule %q: unknown category %q", ErrCatalogInvalid, rule.ID, rule.Category)
	}
	if len(rule.Keywords) == 0 {
		return fmt.Errorf("%w: rule %q: keywords must be a non-empty list", ErrCatalogInvalid, rule.ID)
	}
	for _, kw := range rule.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: rule %q: empty keyword", ErrCatalogInvalid, rule.ID)
		}
	}
	if rule.Response == "" {
		return fmt.Errorf("%w: rule %q: missing response", ErrCatalogInvalid, rule.ID)
	}
	return nil
}
