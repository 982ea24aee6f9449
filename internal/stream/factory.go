package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	streamredis "github.com/genieai/rag-eval-agent/internal/stream/redis"

	connect "github.com/genieai/rag-eval-agent/internal/redis"
)

type StreamConfig struct {
	Provider    string // redis, kafka, sqs, etc
	RedisConfig *streamredis.StreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	re ReEvaluator,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fall back to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := connect.Connect(
			ctx,
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			5,
			logger,
		)
		if err != nil {
			return nil, err
		}

		return streamredis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			re,
			logger,
		), nil

	// Future providers:
	// case "kafka":
	//     return kafka.NewConsumer(...)

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
