package config

// DimensionKind tells the judge which turn fields feed the prompt.
type DimensionKind string

const (
	KindRetrieval  DimensionKind = "retrieval"
	KindGeneration DimensionKind = "generation"
)

// Catalog is the complete dimension configuration loaded at process
// start. The set is closed: adding a dimension is a configuration change,
// never a runtime decision.
type Catalog struct {
	Defaults   ModelParams     `yaml:"default_model"`
	Dimensions []DimensionSpec `yaml:"dimensions"`
}

// ModelParams are the sampling settings for one judge invocation. Judges
// run deterministic-leaning: temperature defaults to 0.
type ModelParams struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DimensionSpec is one catalog entry: a named quality axis with its own
// prompt template, score range and closed judgment label set.
type DimensionSpec struct {
	Name           string        `yaml:"name"`
	Enabled        bool          `yaml:"enabled"`
	Description    string        `yaml:"description"`
	AppliesTo      DimensionKind `yaml:"applies_to"`
	Prompt         string        `yaml:"prompt"`
	ScoreMin       float64       `yaml:"score_min"`
	ScoreMax       float64       `yaml:"score_max"`
	JudgmentLabels []string      `yaml:"judgment_labels"`
	Model          *ModelParams  `yaml:"model"`
}

// ScoreInRange reports whether v lies inside the declared score range,
// bounds included.
func (s DimensionSpec) ScoreInRange(v float64) bool {
	return v >= s.ScoreMin && v <= s.ScoreMax
}

// LegalJudgment reports whether j is one of the declared labels. Labels
// are case-sensitive and matched exactly.
func (s DimensionSpec) LegalJudgment(j string) bool {
	for _, label := range s.JudgmentLabels {
		if j == label {
			return true
		}
	}
	return false
}
