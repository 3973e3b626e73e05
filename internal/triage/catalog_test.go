package triage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if catalog.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for _, rule := range catalog.Rules() {
		if !validCategories[rule.Category] {
			t.Errorf("rule %q has invalid category %q", rule.ID, rule.Category)
		}
	}
}

func TestLoadCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing id", `[{"category":"red","keywords":["x"],"response":"r"}]`},
		{"unknown category", `[{"id":"a","category":"orange","keywords":["x"],"response":"r"}]`},
		{"empty keywords", `[{"id":"a","category":"red","keywords":[],"response":"r"}]`},
		{"blank keyword", `[{"id":"a","category":"red","keywords":["  "],"response":"r"}]`},
		{"missing response", `[{"id":"a","category":"red","keywords":["x"]}]`},
		{"bad pattern", `[{"id":"a","category":"red","keywords":["x"],"patterns":["("],"response":"r"}]`},
		{"not a list", `{"id":"a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			if err := os.WriteFile(path, []byte(tt.json), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadCatalog(path)
			if !errors.Is(err, ErrCatalogInvalid) {
				t.Errorf("LoadCatalog error = %v, want ErrCatalogInvalid", err)
			}
		})
	}
}

func TestLoadCatalogLocalizedResponse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id":"a","category":"red","keywords":["X Ray"],"response":{"fr":"bonjour","en":"hello"}}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	rule := catalog.Rules()[0]
	if got := string(rule.Response); got != "hello" {
		t.Errorf("response = %q, want English variant", got)
	}
	if got := rule.Keywords[0]; got != "x ray" {
		t.Errorf("keyword = %q, want lowercased", got)
	}
}

func TestLoadCatalogEmptyPathUsesEmbedded(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if catalog.Len() == 0 {
		t.Fatal("expected embedded rules")
	}
}
