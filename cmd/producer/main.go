package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/joho/godotenv"

	red "github.com/genieai/rag-eval-agent/internal/redis"
)

// request mirrors the payload the worker consumes.
type request struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	GuestMode bool   `json:"guest_mode"`
}

func main() {
	chatID := flag.String("chat-id", "", "Conversation identifier")
	messageID := flag.String("message-id", "", "User message identifier")
	guest := flag.Bool("guest", false, "Look the turn up in the guest history")
	stream := flag.String("stream", "rag-eval-requests", "Stream name")
	flag.Parse()

	if *chatID == "" || *messageID == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -chat-id <id> -message-id <id> [-guest]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*chatID, *messageID, *guest, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(chatID, messageID string, guest bool, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3, &log.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := json.Marshal(request{ChatID: chatID, MessageID: messageID, GuestMode: guest})
	if err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": string(payload)},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("chat_id", chatID).Msg("Published successfully!")
	return nil
}
