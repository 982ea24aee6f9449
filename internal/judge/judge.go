package judge

import (
	"context"
	"errors"

	"github.com/genieai/rag-eval-agent/internal/models"
)

// ErrJudgeInvocationFailed is returned once a judge has exhausted its
// retries for one dimension of one turn. The wrapped message carries the
// last raw model output for diagnostics.
var ErrJudgeInvocationFailed = errors.New("judge invocation failed")

// Scorer grades one dimension of one turn. Implementations are
// side-effect-free apart from the outbound completion call.
type Scorer interface {
	Score(ctx context.Context, turn models.Turn) (models.JudgeVerdict, error)
	Dimension() string
}
