package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/models"
)

const ingestionPath = "/api/public/ingestion"

// Client is a thin client for the Langfuse ingestion API, authenticated
// with the project's public/secret key pair. Trace emission is
// monitoring-only: callers log failures and move on.
type Client struct {
	host       string
	publicKey  string
	secretKey  string
	httpClient *http.Client
	logger     *zerolog.Logger
}

func NewClient(host, publicKey, secretKey string, logger *zerolog.Logger) (*Client, error) {
	if publicKey == "" || secretKey == "" {
		return nil, fmt.Errorf("langfuse public and secret keys are required")
	}
	if host == "" {
		host = "https://cloud.langfuse.com"
	}

	return &Client{
		host:       strings.TrimRight(host, "/"),
		publicKey:  publicKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}, nil
}

// TraceEvaluation emits one trace per evaluated turn carrying the
// flattened score, judgment and rationale of every dimension that
// produced a verdict.
func (c *Client) TraceEvaluation(ctx context.Context, record models.EvaluationRecord) error {
	traceID := uuid.NewString()
	now := time.Now().UTC()

	events := []event{
		{
			ID:        uuid.NewString(),
			Type:      eventTypeTraceCreate,
			Timestamp: now,
			Body: TraceBody{
				ID:        traceID,
				Name:      "rag-evaluation",
				UserID:    record.Turn.UserID,
				SessionID: "session_" + record.Turn.ChatID,
				Input: map[string]interface{}{
					"question":   record.Turn.Query,
					"chunks":     record.Turn.Chunks,
					"chat_id":    record.Turn.ChatID,
					"created_at": record.Turn.CreatedAt,
				},
				Output: map[string]interface{}{
					"answer":     record.Turn.Answer,
					"evaluation": record.Results,
				},
				Metadata: map[string]interface{}{
					"chat_id":         record.Turn.ChatID,
					"message_id":      record.Turn.MessageID,
					"guest_mode":      record.Turn.GuestMode,
					"evaluation_date": record.EvaluationDate,
				},
				Tags: traceTags(record),
			},
		},
	}

	for name, verdict := range record.Results {
		events = append(events, event{
			ID:        uuid.NewString(),
			Type:      eventTypeScoreCreate,
			Timestamp: now,
			Body: ScoreBody{
				ID:      uuid.NewString(),
				TraceID: traceID,
				Name:    name,
				Value:   verdict.Score,
				Comment: fmt.Sprintf("Judgment: %s\nExplanation: %s", verdict.Judgment, verdict.Rationale),
			},
		})
	}

	return c.send(ctx, ingestionBatch{Batch: events})
}

func (c *Client) send(ctx context.Context, batch ingestionBatch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal langfuse batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+ingestionPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.publicKey, c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("langfuse ingestion request failed: %w", err)
	}
	defer resp.Body.Close()

	// The ingestion endpoint answers 207 on success with per-event status.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("langfuse ingestion returned %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug().Int("events", len(batch.Batch)).Msg("langfuse batch ingested")
	return nil
}

// traceTags mirrors the dashboard's filtering conventions: evaluation
// date, chat id, and one judgment tag per scored dimension.
func traceTags(record models.EvaluationRecord) []string {
	tags := []string{
		"chat_id:" + record.Turn.ChatID,
		"date:" + record.Turn.CreatedAt.Format("2006-01-02"),
		"eval_date:" + record.EvaluationDate.Format("2006-01-02"),
	}
	for name, verdict := range record.Results {
		tags = append(tags, name+":"+verdict.Judgment)
	}
	return tags
}
