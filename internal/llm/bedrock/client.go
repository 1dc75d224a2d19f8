package bedrock

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type Client struct {
	client       *bedrockruntime.Client
	modelID      string
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

func NewClient(ctx context.Context, region string, modelID string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return NewClientFromRuntime(bedrockruntime.NewFromConfig(cfg), modelID), nil
}

// NewClientFromRuntime wraps an already constructed runtime client. Used when
// several model clients share one AWS session.
func NewClientFromRuntime(runtime *bedrockruntime.Client, modelID string) *Client {
	return &Client{
		client:       runtime,
		modelID:      modelID,
		maxRetries:   3,
		initialDelay: 500 * time.Millisecond,
		maxDelay:     8 * time.Second,
	}
}

func (c *Client) ModelID() string {
	return c.modelID
}
