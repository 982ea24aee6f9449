package models

import (
	"time"
)

// Turn is one evaluable conversational exchange loaded from the chat
// history store: the user's query, the chunks retrieved for it, and the
// answer the assistant generated. Turns are read-only after load.
type Turn struct {
	ChatID              string    `json:"chat_id" bson:"chat_id"`
	MessageID           string    `json:"message_id" bson:"message_id"`
	AIResponseMessageID string    `json:"ai_response_message_id" bson:"aiResponseMessageid"`
	UserID              string    `json:"user_id" bson:"user_id"`
	GuestMode           bool      `json:"guest_mode" bson:"guest_mode"`
	Query               string    `json:"query" bson:"query"`
	Chunks              []string  `json:"chunks" bson:"chunks"`
	Answer              string    `json:"answer" bson:"answer"`
	BusinessContext     string    `json:"business_context,omitempty" bson:"business_context,omitempty"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
}

// TurnKey is the identity of a turn. Exactly one evaluation record exists
// per key; re-evaluation replaces it.
type TurnKey struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	GuestMode bool   `json:"guest_mode"`
}

func (t Turn) Key() TurnKey {
	return TurnKey{ChatID: t.ChatID, MessageID: t.MessageID, GuestMode: t.GuestMode}
}

// JudgeVerdict is the validated output of one judge invocation for one
// dimension: a score inside the dimension's declared range, a judgment
// from its closed label set, and the judge's rationale.
type JudgeVerdict struct {
	Dimension string  `json:"dimension" bson:"dimension"`
	Score     float64 `json:"score" bson:"score"`
	Judgment  string  `json:"judgment" bson:"judgment"`
	Rationale string  `json:"rationale" bson:"rationale"`
	RawOutput string  `json:"raw_output,omitempty" bson:"raw_output,omitempty"`
}

// EvaluationRecord is the persisted aggregate for one turn. Results holds
// a verdict per dimension that succeeded; dimensions that failed are
// simply absent, never null-padded. The store flattens
// {dimension}_score and {dimension}_judgment to top-level document fields
// for querying.
type EvaluationRecord struct {
	Turn           Turn                    `json:"turn"`
	EvaluationDate time.Time               `json:"evaluation_date"`
	Results        map[string]JudgeVerdict `json:"evaluation_results"`

	// Partial marks that at least one dimension failed for this turn.
	// Run accounting only; never persisted.
	Partial bool `json:"-" bson:"-"`
}

// RunSummary is the transient outcome of one run. It is reported, never
// stored.
type RunSummary struct {
	TurnsSelected                 int       `json:"turns_selected"`
	TurnsEvaluated                int       `json:"turns_evaluated"`
	TurnsSkippedDimensionFailures int       `json:"turns_skipped_dimension_failures"`
	TurnsFailedEntirely           int       `json:"turns_failed_entirely"`
	TurnsPersistFailed            int       `json:"turns_persist_failed"`
	StartedAt                     time.Time `json:"started_at"`
	FinishedAt                    time.Time `json:"finished_at"`
}
