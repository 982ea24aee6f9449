package langfuse

import "time"

// Ingestion API event envelope. Every observation goes through the batch
// endpoint; the event type selects the body shape.
type ingestionBatch struct {
	Batch []event `json:"batch"`
}

type event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Body      interface{} `json:"body"`
}

const (
	eventTypeTraceCreate = "trace-create"
	eventTypeScoreCreate = "score-create"
)

// TraceBody is one evaluation trace: the turn under evaluation plus
// everything a dashboard needs to slice on.
type TraceBody struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	UserID    string                 `json:"userId,omitempty"`
	SessionID string                 `json:"sessionId,omitempty"`
	Input     interface{}            `json:"input,omitempty"`
	Output    interface{}            `json:"output,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Tags      []string               `json:"tags,omitempty"`
}

// ScoreBody attaches one dimension's verdict to a trace.
type ScoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
