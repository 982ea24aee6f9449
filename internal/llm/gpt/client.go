package gpt

import (
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Client struct {
	Client         openai.Client
	ModelID        string
	RequestTimeout time.Duration
}

func NewClient(apiKey string, model string, requestTimeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model ID is required")
	}
	if requestTimeout == 0 {
		requestTimeout = 60 * time.Second
	}

	openaiClient := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{
		Client:         openaiClient,
		ModelID:        model,
		RequestTimeout: requestTimeout,
	}, nil
}
