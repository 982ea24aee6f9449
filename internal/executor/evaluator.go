package executor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/judge"
	"github.com/genieai/rag-eval-agent/internal/models"
)

// ErrAllDimensionsFailed means no dimension produced a verdict for a
// turn. No record is written in that case: a record with zero scores
// would be indistinguishable from "not yet evaluated".
var ErrAllDimensionsFailed = errors.New("all dimensions failed")

// Orchestrator fans one turn out across the judge set and assembles the
// evaluation record. A single dimension's failure never discards the
// others' verdicts.
type Orchestrator struct {
	scorers map[string]judge.Scorer
	logger  *zerolog.Logger
}

func NewOrchestrator(scorers map[string]judge.Scorer, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		scorers: scorers,
		logger:  logger,
	}
}

// DimensionCount returns the size of the configured dimension set.
func (o *Orchestrator) DimensionCount() int {
	return len(o.scorers)
}

type dimensionResult struct {
	dimension string
	verdict   models.JudgeVerdict
	err       error
}

// Evaluate scores every applicable dimension concurrently. Dimensions
// that fail after the judge's own retries are omitted from the record;
// ErrAllDimensionsFailed is returned only when nothing succeeded.
func (o *Orchestrator) Evaluate(ctx context.Context, turn models.Turn) (models.EvaluationRecord, error) {
	results := make(chan dimensionResult, len(o.scorers))
	var wg sync.WaitGroup

	for name, scorer := range o.scorers {
		wg.Add(1)
		go func(name string, scorer judge.Scorer) {
			defer wg.Done()
			verdict, err := scorer.Score(ctx, turn)
			results <- dimensionResult{dimension: name, verdict: verdict, err: err}
		}(name, scorer)
	}

	wg.Wait()
	close(results)

	verdicts := make(map[string]models.JudgeVerdict, len(o.scorers))
	failed := 0

	for result := range results {
		if result.err != nil {
			failed++
			o.logger.Error().
				Err(result.err).
				Str("chat_id", turn.ChatID).
				Str("message_id", turn.MessageID).
				Str("dimension", result.dimension).
				Msg("dimension failed, omitting from record")
			continue
		}
		verdicts[result.dimension] = result.verdict
	}

	if len(verdicts) == 0 {
		return models.EvaluationRecord{}, ErrAllDimensionsFailed
	}

	record := models.EvaluationRecord{
		Turn:           turn,
		EvaluationDate: time.Now(),
		Results:        verdicts,
		Partial:        failed > 0,
	}

	o.logger.Info().
		Str("chat_id", turn.ChatID).
		Str("message_id", turn.MessageID).
		Int("dimensions_scored", len(verdicts)).
		Int("dimensions_failed", failed).
		Msg("turn evaluated")

	return record, nil
}
