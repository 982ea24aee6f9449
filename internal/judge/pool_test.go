package judge

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/config"
)

func TestPool_BuildFromCatalog(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	relevance := testSpec()
	relevance.Name = "relevance"
	relevance.AppliesTo = config.KindRetrieval

	disabled := testSpec()
	disabled.Name = "coherence"
	disabled.Enabled = false

	cat := &config.Catalog{
		Dimensions: []config.DimensionSpec{testSpec(), relevance, disabled},
	}

	scorers, err := pool.BuildFromCatalog(cat)
	if err != nil {
		t.Fatalf("BuildFromCatalog failed: %v", err)
	}

	if len(scorers) != 2 {
		t.Fatalf("Expected 2 scorers, got %d", len(scorers))
	}
	if _, ok := scorers["accuracy"]; !ok {
		t.Error("Expected accuracy scorer")
	}
	if _, ok := scorers["coherence"]; ok {
		t.Error("Disabled dimension should not get a scorer")
	}
	if scorers["relevance"].Dimension() != "relevance" {
		t.Errorf("Unexpected dimension name '%s'", scorers["relevance"].Dimension())
	}
}

func TestPool_BuildFromCatalog_NoneEnabled(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	disabled := testSpec()
	disabled.Enabled = false

	_, err := pool.BuildFromCatalog(&config.Catalog{Dimensions: []config.DimensionSpec{disabled}})
	if err == nil {
		t.Error("Expected error when no dimensions are enabled")
	}
}

func TestPool_BuildFromCatalog_NilCatalog(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	if _, err := pool.BuildFromCatalog(nil); err == nil {
		t.Error("Expected error for nil catalog")
	}
}
