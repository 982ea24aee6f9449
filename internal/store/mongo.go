package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrDataSourceUnavailable means the document store is unreachable or
// misconfigured. It is fatal: a run aborts before any evaluation rather
// than working over an undefined subset.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

// ErrPersistenceFailed covers a failed evaluation-record write. Local to
// one turn; the run continues.
var ErrPersistenceFailed = errors.New("persistence failed")

const (
	collectionMessageHistory      = "Message_History"
	collectionGuestMessageHistory = "Guest_Message_History"
	collectionSearchChunks        = "SearchChunks"
	collectionEvaluations         = "RAG_Evaluations"
)

// Connect opens a client against the document store and verifies it with
// a ping before anything else runs.
func Connect(ctx context.Context, uri string, logger *zerolog.Logger) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: empty MongoDB URI", ErrDataSourceUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10*time.Second).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping failed: %v", ErrDataSourceUnavailable, err)
	}

	logger.Info().Msg("MongoDB connected")
	return client, nil
}

func historyCollection(guestMode bool) string {
	if guestMode {
		return collectionGuestMessageHistory
	}
	return collectionMessageHistory
}
