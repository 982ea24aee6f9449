package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/models"
)

// ReEvaluator re-scores one stored conversation turn on demand.
type ReEvaluator interface {
	ReEvaluate(ctx context.Context, key models.TurnKey) (models.EvaluationRecord, error)
}

// reEvaluationRequest is the wire payload pushed onto the stream by the
// assistant's backend when a turn needs a fresh evaluation.
type reEvaluationRequest struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	GuestMode bool   `json:"guest_mode"`
}

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	reevaluator  ReEvaluator
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, streamName string, groupID string, consumerName string, re ReEvaluator, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       streamName,
		groupID:      groupID,
		consumerName: consumerName,
		reevaluator:  re,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("re-evaluation consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("re-evaluation request received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var req reEvaluationRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("failed to decode message")
		c.ack(ctx, msg.ID) // bad message — ACK to skip it
		return
	}

	if req.ChatID == "" || req.MessageID == "" {
		c.logger.Error().Str("id", msg.ID).Msg("request missing chat_id or message_id")
		c.ack(ctx, msg.ID)
		return
	}

	record, err := c.reevaluator.ReEvaluate(ctx, models.TurnKey{
		ChatID:    req.ChatID,
		MessageID: req.MessageID,
		GuestMode: req.GuestMode,
	})
	if err != nil {
		// Leave the message unacked so another consumer (or the next
		// delivery) can retry a transient failure.
		c.logger.Error().Err(err).
			Str("id", msg.ID).
			Str("chat_id", req.ChatID).
			Str("message_id", req.MessageID).
			Msg("re-evaluation failed")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("chat_id", record.Turn.ChatID).
		Str("message_id", record.Turn.MessageID).
		Int("dimensions_scored", len(record.Results)).
		Msg("re-evaluation complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("failed to ACK message")
	}
}
