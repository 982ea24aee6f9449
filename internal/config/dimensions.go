package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultCatalogPath = "configs/dimensions.yaml"

// LoadCatalog reads the dimension catalog from DIMENSIONS_CONFIG_PATH,
// falling back to configs/dimensions.yaml. The catalog is validated
// before use; a broken catalog is a startup failure, not something to
// limp along with.
func LoadCatalog() (*Catalog, error) {
	path := os.Getenv("DIMENSIONS_CONFIG_PATH")
	if path == "" {
		path = defaultCatalogPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dimensions config %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog unmarshals, defaults and validates a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse dimensions config: %w", err)
	}

	applyDefaults(&cat)

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	return &cat, nil
}

func applyDefaults(cat *Catalog) {
	if cat.Defaults.MaxTokens == 0 {
		cat.Defaults.MaxTokens = 512
	}

	for i := range cat.Dimensions {
		dim := &cat.Dimensions[i]
		if dim.Model == nil {
			params := cat.Defaults
			dim.Model = &params
		}
		if dim.Model.MaxTokens == 0 {
			dim.Model.MaxTokens = cat.Defaults.MaxTokens
		}
		// Score range defaults to [0, 1] when the entry declares neither bound.
		if dim.ScoreMin == 0 && dim.ScoreMax == 0 {
			dim.ScoreMax = 1.0
		}
	}
}

// Validate rejects catalogs that would produce an unpredictable record
// schema: duplicate or missing names, unknown kinds, empty prompts or
// label sets, inverted score ranges.
func (c *Catalog) Validate() error {
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("dimensions config declares no dimensions")
	}

	seen := make(map[string]bool, len(c.Dimensions))
	for _, dim := range c.Dimensions {
		if dim.Name == "" {
			return fmt.Errorf("dimension with empty name")
		}
		if seen[dim.Name] {
			return fmt.Errorf("duplicate dimension %q", dim.Name)
		}
		seen[dim.Name] = true

		if dim.AppliesTo != KindRetrieval && dim.AppliesTo != KindGeneration {
			return fmt.Errorf("dimension %q: unknown applies_to %q", dim.Name, dim.AppliesTo)
		}
		if dim.Prompt == "" {
			return fmt.Errorf("dimension %q: empty prompt", dim.Name)
		}
		if len(dim.JudgmentLabels) == 0 {
			return fmt.Errorf("dimension %q: no judgment labels", dim.Name)
		}
		if dim.ScoreMax <= dim.ScoreMin {
			return fmt.Errorf("dimension %q: score range [%v, %v] is empty", dim.Name, dim.ScoreMin, dim.ScoreMax)
		}
	}

	return nil
}

// Enabled returns the dimensions that are switched on, in catalog order.
func (c *Catalog) Enabled() []DimensionSpec {
	var out []DimensionSpec
	for _, dim := range c.Dimensions {
		if dim.Enabled {
			out = append(out, dim)
		}
	}
	return out
}
