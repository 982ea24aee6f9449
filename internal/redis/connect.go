package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Connect dials Redis with exponential backoff between ping attempts.
// The re-evaluation worker refuses to start without a reachable broker.
func Connect(ctx context.Context, addr string, password string, maxAttempts int, logger *zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("waiting before redis retry")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err = client.Ping(ctx).Err(); err == nil {
			logger.Info().Str("addr", addr).Int("attempts", attempt).Msg("redis connected")
			return client, nil
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxAttempts, err)
}
