package sink

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/models"
)

// RecordWriter is the authoritative store write: an upsert keyed on turn
// identity.
type RecordWriter interface {
	Upsert(ctx context.Context, record models.EvaluationRecord) error
}

// TraceEmitter sends the same scores to the observability service.
type TraceEmitter interface {
	TraceEvaluation(ctx context.Context, record models.EvaluationRecord) error
}

// Sink persists evaluation records to two independent channels. The
// document-store write decides success; the trace is fire-and-forget and
// its failure is logged, never escalated.
type Sink struct {
	records RecordWriter
	traces  TraceEmitter
	logger  *zerolog.Logger
}

// NewSink builds a sink. traces may be nil when tracing is not
// configured.
func NewSink(records RecordWriter, traces TraceEmitter, logger *zerolog.Logger) *Sink {
	return &Sink{
		records: records,
		traces:  traces,
		logger:  logger,
	}
}

func (s *Sink) Persist(ctx context.Context, record models.EvaluationRecord) error {
	if err := s.records.Upsert(ctx, record); err != nil {
		return err
	}

	if s.traces != nil {
		if traceErr := s.traces.TraceEvaluation(ctx, record); traceErr != nil {
			s.logger.Warn().
				Err(traceErr).
				Str("chat_id", record.Turn.ChatID).
				Str("message_id", record.Turn.MessageID).
				Msg("trace emission failed")
		}
	}

	return nil
}
