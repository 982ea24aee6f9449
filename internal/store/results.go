package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/genieai/rag-eval-agent/internal/models"
)

// EvaluationRepository writes evaluation records with an upsert on the
// turn identity: re-evaluating a turn replaces its prior record in place,
// keeping exactly one current record per turn.
type EvaluationRepository struct {
	collection *mongo.Collection
	logger     *zerolog.Logger
}

func NewEvaluationRepository(db *mongo.Database, logger *zerolog.Logger) *EvaluationRepository {
	return &EvaluationRepository{
		collection: db.Collection(collectionEvaluations),
		logger:     logger,
	}
}

func (r *EvaluationRepository) Upsert(ctx context.Context, record models.EvaluationRecord) error {
	filter := bson.M{
		"chat_id":    record.Turn.ChatID,
		"message_id": record.Turn.MessageID,
		"guest_mode": record.Turn.GuestMode,
	}

	result, err := r.collection.ReplaceOne(ctx, filter, recordDocument(record), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: upsert evaluation for chat %s message %s: %v",
			ErrPersistenceFailed, record.Turn.ChatID, record.Turn.MessageID, err)
	}

	r.logger.Info().
		Str("chat_id", record.Turn.ChatID).
		Str("message_id", record.Turn.MessageID).
		Bool("guest_mode", record.Turn.GuestMode).
		Bool("replaced", result.ModifiedCount > 0).
		Int("dimensions", len(record.Results)).
		Msg("evaluation record upserted")
	return nil
}

// recordDocument builds the persisted document shape: turn fields, the
// full per-dimension results, and flattened {dimension}_score /
// {dimension}_judgment fields for querying. Failed dimensions are simply
// absent; nothing is null-padded.
func recordDocument(record models.EvaluationRecord) bson.M {
	doc := bson.M{
		"chat_id":             record.Turn.ChatID,
		"message_id":          record.Turn.MessageID,
		"aiResponseMessageid": record.Turn.AIResponseMessageID,
		"user_id":             record.Turn.UserID,
		"guest_mode":          record.Turn.GuestMode,
		"query":               record.Turn.Query,
		"chunks":              record.Turn.Chunks,
		"answer":              record.Turn.Answer,
		"message_created_at":  record.Turn.CreatedAt,
		"evaluation_date":     record.EvaluationDate,
		"evaluation_results":  record.Results,
	}

	for name, verdict := range record.Results {
		doc[name+"_score"] = verdict.Score
		doc[name+"_judgment"] = verdict.Judgment
	}

	return doc
}
