package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/genieai/rag-eval-agent/internal/setup"
	"github.com/genieai/rag-eval-agent/internal/stream"
	streamredis "github.com/genieai/rag-eval-agent/internal/stream/redis"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close(context.Background())

	consumerName := os.Getenv("HOSTNAME")
	if consumerName == "" {
		consumerName = "rag-eval-worker"
	}

	streamCfg := &stream.StreamConfig{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: &streamredis.StreamConfig{
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			Stream:        cfg.StreamName,
			Group:         cfg.StreamGroup,
			ConsumerName:  consumerName,
		},
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Controller, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	log.Info().Msg("RAG eval worker stopped")
}
