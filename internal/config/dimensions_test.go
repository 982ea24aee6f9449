package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validCatalog = `
default_model:
  max_tokens: 512
  temperature: 0.0

dimensions:
  - name: relevance
    enabled: true
    applies_to: retrieval
    prompt: "Query: {{.Query}} Chunks: {{.Chunks}}"
    judgment_labels: [relevant, partially_relevant, irrelevant]

  - name: accuracy
    enabled: true
    applies_to: generation
    prompt: "Answer: {{.Answer}}"
    judgment_labels: [fully_correct_and_faithful, partially_correct_or_faithful, incorrect_or_unfaithful]
    model:
      max_tokens: 256
      temperature: 0.1
`

func TestParseCatalog_Valid(t *testing.T) {
	cat, err := ParseCatalog([]byte(validCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}

	if len(cat.Dimensions) != 2 {
		t.Fatalf("Expected 2 dimensions, got %d", len(cat.Dimensions))
	}

	relevance := cat.Dimensions[0]
	if relevance.AppliesTo != KindRetrieval {
		t.Errorf("Expected retrieval kind, got %q", relevance.AppliesTo)
	}
	// Defaults applied
	if relevance.Model == nil || relevance.Model.MaxTokens != 512 {
		t.Errorf("Expected default max_tokens=512, got %+v", relevance.Model)
	}
	if relevance.ScoreMin != 0 || relevance.ScoreMax != 1 {
		t.Errorf("Expected default score range [0,1], got [%v,%v]", relevance.ScoreMin, relevance.ScoreMax)
	}

	accuracy := cat.Dimensions[1]
	if accuracy.Model.MaxTokens != 256 {
		t.Errorf("Expected per-dimension max_tokens=256, got %d", accuracy.Model.MaxTokens)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no dimensions", `dimensions: []`},
		{"duplicate name", `
dimensions:
  - {name: a, applies_to: retrieval, prompt: p, judgment_labels: [x]}
  - {name: a, applies_to: retrieval, prompt: p, judgment_labels: [x]}
`},
		{"unknown kind", `
dimensions:
  - {name: a, applies_to: reasoning, prompt: p, judgment_labels: [x]}
`},
		{"empty prompt", `
dimensions:
  - {name: a, applies_to: retrieval, prompt: "", judgment_labels: [x]}
`},
		{"no labels", `
dimensions:
  - {name: a, applies_to: retrieval, prompt: p, judgment_labels: []}
`},
		{"inverted range", `
dimensions:
  - {name: a, applies_to: retrieval, prompt: p, judgment_labels: [x], score_min: 1.0, score_max: 0.5}
`},
		{"bad yaml", `dimensions: [`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tc.doc)); err == nil {
				t.Errorf("Expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadCatalog_EnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dims.yaml")
	if err := os.WriteFile(path, []byte(validCatalog), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv("DIMENSIONS_CONFIG_PATH", path)

	cat, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(cat.Dimensions) != 2 {
		t.Errorf("Expected 2 dimensions, got %d", len(cat.Dimensions))
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	t.Setenv("DIMENSIONS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := LoadCatalog(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestDimensionSpec_ScoreInRange(t *testing.T) {
	spec := DimensionSpec{ScoreMin: 0, ScoreMax: 1}

	for score, want := range map[float64]bool{
		0:    true,
		1:    true,
		0.5:  true,
		-0.1: false,
		1.1:  false,
	} {
		if got := spec.ScoreInRange(score); got != want {
			t.Errorf("ScoreInRange(%v) = %v, want %v", score, got, want)
		}
	}
}

func TestCatalog_Enabled(t *testing.T) {
	cat := &Catalog{Dimensions: []DimensionSpec{
		{Name: "a", Enabled: true},
		{Name: "b", Enabled: false},
		{Name: "c", Enabled: true},
	}}

	enabled := cat.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("Expected 2 enabled, got %d", len(enabled))
	}
	if enabled[0].Name != "a" || enabled[1].Name != "c" {
		t.Errorf("Enabled dimensions out of order: %+v", enabled)
	}
}
