package stream

import (
	"context"

	"github.com/genieai/rag-eval-agent/internal/models"
)

type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

// ReEvaluator re-scores one already-stored conversation turn on demand.
// Satisfied by runner.Controller.
type ReEvaluator interface {
	ReEvaluate(ctx context.Context, key models.TurnKey) (models.EvaluationRecord, error)
}
