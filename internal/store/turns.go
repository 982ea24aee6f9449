package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/genieai/rag-eval-agent/internal/models"
)

// ErrTurnNotFound is returned by FindTurn when no message matches the
// requested identity.
var ErrTurnNotFound = errors.New("turn not found")

// Selection describes which turns one selector invocation yields.
type Selection struct {
	GuestMode  bool
	Limit      int
	DateFilter bool
	// Start/End, when both set, override the default window. The window
	// is half-open: [Start, End).
	Start time.Time
	End   time.Time
}

// Window resolves the effective date window at time now. ok=false means
// no date filtering at all (the --no-date-filter override). With no
// explicit range the window is the 7 days ending at midnight today,
// matching the weekly run cadence and preventing unbounded re-scans.
func (sel Selection) Window(now time.Time) (start, end time.Time, ok bool) {
	if !sel.DateFilter {
		return time.Time{}, time.Time{}, false
	}
	if !sel.Start.IsZero() && !sel.End.IsZero() {
		return sel.Start, sel.End, true
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -7), midnight, true
}

// TurnSelector reads evaluable turns from the chat history collections.
type TurnSelector struct {
	db     *mongo.Database
	logger *zerolog.Logger
}

func NewTurnSelector(db *mongo.Database, logger *zerolog.Logger) *TurnSelector {
	return &TurnSelector{db: db, logger: logger}
}

// chat documents as stored by the assistant. Only the fields the
// selector needs are decoded.
type chatDocument struct {
	ChatID    string        `bson:"chat_id"`
	UserID    string        `bson:"userId"`
	CreatedAt time.Time     `bson:"created_at"`
	Messages  []chatMessage `bson:"messages"`
}

type chatMessage struct {
	MessageID           string           `bson:"messageid"`
	Query               string           `bson:"query"`
	AIResponseMessageID string           `bson:"aiResponseMessageid"`
	AIResponse          []aiResponse     `bson:"aiResponse"`
	RetrievedChunks     []retrievedChunk `bson:"retrievedChunks"`
	ChunksReference     interface{}      `bson:"chunksReference"`
	CreatedAt           time.Time        `bson:"created_at"`
}

type aiResponse struct {
	Type    string `bson:"type"`
	Content string `bson:"content"`
}

type retrievedChunk struct {
	Text string `bson:"text"`
}

type searchChunksDocument struct {
	Chunks []retrievedChunk `bson:"chunks"`
}

// Select yields turns matching the selection, deduplicated on identity
// within this invocation and capped by Limit, in the store's natural
// order. An unreachable store surfaces as ErrDataSourceUnavailable.
func (s *TurnSelector) Select(ctx context.Context, sel Selection) ([]models.Turn, error) {
	filter := bson.M{"messages": bson.M{"$exists": true}}

	start, end, windowed := sel.Window(time.Now())
	if windowed {
		filter["created_at"] = bson.M{"$gte": start, "$lt": end}
		s.logger.Info().
			Time("start", start).
			Time("end", end).
			Bool("guest_mode", sel.GuestMode).
			Msg("filtering conversations by date window")
	}

	collection := s.db.Collection(historyCollection(sel.GuestMode))

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrDataSourceUnavailable, collection.Name(), err)
	}
	defer cursor.Close(ctx)

	var (
		turns []models.Turn
		seen  = make(map[models.TurnKey]bool)
	)

scan:
	for cursor.Next(ctx) {
		var chat chatDocument
		if err := cursor.Decode(&chat); err != nil {
			s.logger.Warn().Err(err).Msg("skipping undecodable chat document")
			continue
		}

		for _, turn := range extractTurns(chat, sel.GuestMode) {
			// The created_at filter above matches the chat document; individual
			// messages inside a matching chat can still fall outside the window.
			if windowed && !inWindow(turn.CreatedAt, start, end) {
				continue
			}
			if seen[turn.Key()] {
				continue
			}
			seen[turn.Key()] = true

			if len(turn.Chunks) == 0 {
				turn.Chunks = s.lookupChunks(ctx, chat, turn)
			}

			turns = append(turns, turn)
			if sel.Limit > 0 && len(turns) >= sel.Limit {
				s.logger.Info().Int("turns", len(turns)).Msg("selection limit reached")
				break scan
			}
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor: %v", ErrDataSourceUnavailable, err)
	}

	s.attachBusinessContexts(ctx, turns, sel.GuestMode)

	s.logger.Info().Int("turns", len(turns)).Msg("turns selected")
	return turns, nil
}

// FindTurn loads a single turn by identity, for on-demand re-evaluation.
func (s *TurnSelector) FindTurn(ctx context.Context, key models.TurnKey) (models.Turn, error) {
	collection := s.db.Collection(historyCollection(key.GuestMode))

	var chat chatDocument
	err := collection.FindOne(ctx, bson.M{"chat_id": key.ChatID}).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Turn{}, fmt.Errorf("%w: chat %s", ErrTurnNotFound, key.ChatID)
		}
		return models.Turn{}, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	for _, turn := range extractTurns(chat, key.GuestMode) {
		if turn.MessageID != key.MessageID {
			continue
		}
		if len(turn.Chunks) == 0 {
			turn.Chunks = s.lookupChunks(ctx, chat, turn)
		}

		single := []models.Turn{turn}
		s.attachBusinessContexts(ctx, single, key.GuestMode)
		return single[0], nil
	}

	return models.Turn{}, fmt.Errorf("%w: message %s in chat %s", ErrTurnNotFound, key.MessageID, key.ChatID)
}

// inWindow reports whether t falls inside the half-open window
// [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// extractTurns pulls the evaluable message pairs out of one chat
// document: a query with an identified GPT response. Messages missing
// either side are not evaluable and are skipped.
func extractTurns(chat chatDocument, guestMode bool) []models.Turn {
	var turns []models.Turn

	for _, msg := range chat.Messages {
		if msg.Query == "" || msg.AIResponseMessageID == "" {
			continue
		}

		var answer string
		for _, resp := range msg.AIResponse {
			if resp.Type == "GPT" {
				answer = resp.Content
				break
			}
		}
		if answer == "" {
			continue
		}

		chunks := make([]string, 0, len(msg.RetrievedChunks))
		for _, chunk := range msg.RetrievedChunks {
			chunks = append(chunks, chunk.Text)
		}

		createdAt := msg.CreatedAt
		if createdAt.IsZero() {
			createdAt = chat.CreatedAt
		}

		userID := chat.UserID
		if userID == "" {
			userID = "guest"
		}

		turns = append(turns, models.Turn{
			ChatID:              chat.ChatID,
			MessageID:           msg.MessageID,
			AIResponseMessageID: msg.AIResponseMessageID,
			UserID:              userID,
			GuestMode:           guestMode,
			Query:               msg.Query,
			Chunks:              chunks,
			Answer:              answer,
			CreatedAt:           createdAt,
		})
	}

	return turns
}

// lookupChunks resolves chunks stored out of line in SearchChunks, first
// by direct reference, then by (query, chat_id, response id). Best
// effort: a turn without chunks is still evaluable on its generation
// dimensions.
func (s *TurnSelector) lookupChunks(ctx context.Context, chat chatDocument, turn models.Turn) []string {
	collection := s.db.Collection(collectionSearchChunks)

	var ref interface{}
	for _, msg := range chat.Messages {
		if msg.MessageID == turn.MessageID {
			ref = msg.ChunksReference
			break
		}
	}

	var filter bson.M
	if ref != nil {
		filter = bson.M{"_id": ref}
	} else {
		filter = bson.M{
			"query":               turn.Query,
			"chat_id":             turn.ChatID,
			"aiResponseMessageid": turn.AIResponseMessageID,
		}
	}

	var doc searchChunksDocument
	if err := collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().Err(err).Str("chat_id", turn.ChatID).Msg("chunk lookup failed")
		}
		return nil
	}

	chunks := make([]string, 0, len(doc.Chunks))
	for _, chunk := range doc.Chunks {
		chunks = append(chunks, chunk.Text)
	}
	return chunks
}
