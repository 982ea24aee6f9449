package bedrock

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type Client struct {
	Client         *bedrockruntime.Client
	ModelID        string
	RequestTimeout time.Duration
}

func NewClient(ctx context.Context, region string, modelID string, requestTimeout time.Duration) (*Client, error) {
	if modelID == "" {
		return nil, fmt.Errorf("Claude model ID is required")
	}
	if requestTimeout == 0 {
		requestTimeout = 60 * time.Second
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		Client:         bedrockruntime.NewFromConfig(cfg),
		ModelID:        modelID,
		RequestTimeout: requestTimeout,
	}, nil
}
