package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/executor"
	"github.com/genieai/rag-eval-agent/internal/models"
	"github.com/genieai/rag-eval-agent/internal/store"
)

//go:generate mockgen -source=controller.go -destination=mocks/mock_controller.go -package=mocks

// TurnSource yields the turns one run evaluates.
type TurnSource interface {
	Select(ctx context.Context, sel store.Selection) ([]models.Turn, error)
	FindTurn(ctx context.Context, key models.TurnKey) (models.Turn, error)
}

// Evaluator scores one turn across the dimension set.
type Evaluator interface {
	Evaluate(ctx context.Context, turn models.Turn) (models.EvaluationRecord, error)
}

// RecordSink persists one evaluation record.
type RecordSink interface {
	Persist(ctx context.Context, record models.EvaluationRecord) error
}

// RunOptions are the parsed command-surface arguments for one run.
type RunOptions struct {
	GuestMode  bool
	Limit      int
	DateFilter bool
	Start      time.Time
	End        time.Time
	Force      bool
}

func (o RunOptions) explicitRange() bool {
	return !o.Start.IsZero() && !o.End.IsZero()
}

// Controller drives one batch run: gate, select, evaluate with a bounded
// worker pool, persist, report. Turn-level failures are absorbed into the
// summary; only selection and configuration failures abort the run.
type Controller struct {
	source    TurnSource
	evaluator Evaluator
	sink      RecordSink
	gate      Gate
	workers   int
	logger    *zerolog.Logger
}

func NewController(
	source TurnSource,
	evaluator Evaluator,
	sink RecordSink,
	gate Gate,
	workers int,
	logger *zerolog.Logger,
) *Controller {
	if workers <= 0 {
		workers = 5
	}
	return &Controller{
		source:    source,
		evaluator: evaluator,
		sink:      sink,
		gate:      gate,
		workers:   workers,
		logger:    logger,
	}
}

type turnOutcome struct {
	evaluated      bool
	partial        bool
	failedEntirely bool
	persistFailed  bool
}

// Run executes one batch run and reports its summary. A skipped run (the
// schedule gate says no) returns a zero-turn summary and no error.
func (c *Controller) Run(ctx context.Context, opts RunOptions) (models.RunSummary, error) {
	summary := models.RunSummary{StartedAt: time.Now()}

	if !c.gate.ShouldRun(summary.StartedAt, opts.Force, opts.explicitRange()) {
		c.logger.Info().
			Str("day", summary.StartedAt.Weekday().String()).
			Str("schedule_day", c.gate.ScheduleDay.String()).
			Msg("outside schedule, skipping run (use force-run to override)")
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	turns, err := c.source.Select(ctx, store.Selection{
		GuestMode:  opts.GuestMode,
		Limit:      opts.Limit,
		DateFilter: opts.DateFilter,
		Start:      opts.Start,
		End:        opts.End,
	})
	if err != nil {
		summary.FinishedAt = time.Now()
		return summary, fmt.Errorf("turn selection failed: %w", err)
	}

	summary.TurnsSelected = len(turns)
	if len(turns) == 0 {
		c.logger.Info().Msg("no turns to evaluate")
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	jobs := make(chan models.Turn)
	outcomes := make(chan turnOutcome, len(turns))
	var wg sync.WaitGroup

	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for turn := range jobs {
				outcomes <- c.processTurn(ctx, turn)
			}
		}()
	}

	for _, turn := range turns {
		select {
		case jobs <- turn:
		case <-ctx.Done():
			// In-flight work drains; unpersisted records are re-produced
			// by the next run's selection.
			c.logger.Warn().Msg("run cancelled, stopping dispatch")
			goto drain
		}
	}

drain:
	close(jobs)
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		switch {
		case outcome.failedEntirely:
			summary.TurnsFailedEntirely++
		case outcome.persistFailed:
			summary.TurnsPersistFailed++
		case outcome.evaluated:
			summary.TurnsEvaluated++
			if outcome.partial {
				summary.TurnsSkippedDimensionFailures++
			}
		}
	}

	summary.FinishedAt = time.Now()
	c.report(summary)
	return summary, nil
}

// ReEvaluate runs the full evaluate-and-persist path for a single turn,
// for the on-demand surfaces (API, stream, MCP).
func (c *Controller) ReEvaluate(ctx context.Context, key models.TurnKey) (models.EvaluationRecord, error) {
	turn, err := c.source.FindTurn(ctx, key)
	if err != nil {
		return models.EvaluationRecord{}, err
	}

	record, err := c.evaluator.Evaluate(ctx, turn)
	if err != nil {
		return models.EvaluationRecord{}, err
	}

	if err := c.sink.Persist(ctx, record); err != nil {
		return models.EvaluationRecord{}, err
	}

	return record, nil
}

func (c *Controller) processTurn(ctx context.Context, turn models.Turn) turnOutcome {
	record, err := c.evaluator.Evaluate(ctx, turn)
	if err != nil {
		if errors.Is(err, executor.ErrAllDimensionsFailed) {
			c.logger.Error().
				Str("chat_id", turn.ChatID).
				Str("message_id", turn.MessageID).
				Msg("every dimension failed, no record written")
			return turnOutcome{failedEntirely: true}
		}
		c.logger.Error().Err(err).
			Str("chat_id", turn.ChatID).
			Str("message_id", turn.MessageID).
			Msg("evaluation failed")
		return turnOutcome{failedEntirely: true}
	}

	if err := c.sink.Persist(ctx, record); err != nil {
		c.logger.Error().Err(err).
			Str("chat_id", turn.ChatID).
			Str("message_id", turn.MessageID).
			Msg("failed to persist evaluation record")
		return turnOutcome{persistFailed: true}
	}

	return turnOutcome{evaluated: true, partial: record.Partial}
}

func (c *Controller) report(summary models.RunSummary) {
	c.logger.Info().
		Int("turns_selected", summary.TurnsSelected).
		Int("turns_evaluated", summary.TurnsEvaluated).
		Int("turns_partial", summary.TurnsSkippedDimensionFailures).
		Int("turns_failed_entirely", summary.TurnsFailedEntirely).
		Int("turns_persist_failed", summary.TurnsPersistFailed).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("run complete")
}
