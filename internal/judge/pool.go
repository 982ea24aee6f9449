package judge

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/config"
	"github.com/genieai/rag-eval-agent/internal/llm"
)

// Pool builds the judge set from the dimension catalog: one scorer per
// enabled dimension.
type Pool struct {
	llmClient llm.Client
	logger    *zerolog.Logger
}

func NewPool(llmClient llm.Client, logger *zerolog.Logger) *Pool {
	return &Pool{
		llmClient: llmClient,
		logger:    logger,
	}
}

// BuildFromCatalog returns scorers keyed by dimension name, in a map so
// the orchestrator can fan out without caring about order.
func (p *Pool) BuildFromCatalog(cat *config.Catalog) (map[string]Scorer, error) {
	if cat == nil {
		return nil, fmt.Errorf("dimension catalog is nil")
	}

	scorers := make(map[string]Scorer)

	for _, spec := range cat.Dimensions {
		if !spec.Enabled {
			p.logger.Info().
				Str("dimension", spec.Name).
				Msg("dimension disabled in config, skipping")
			continue
		}

		j, err := NewLLMJudge(spec, p.llmClient, p.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create judge for dimension %s: %w", spec.Name, err)
		}

		scorers[spec.Name] = j

		p.logger.Info().
			Str("dimension", spec.Name).
			Str("applies_to", string(spec.AppliesTo)).
			Int("max_tokens", spec.Model.MaxTokens).
			Float64("temperature", spec.Model.Temperature).
			Msg("judge created")
	}

	if len(scorers) == 0 {
		return nil, fmt.Errorf("no enabled dimensions in catalog")
	}

	return scorers, nil
}
