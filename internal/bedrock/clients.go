package bedrock

import (
	"context"
	"fmt"

	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/aws/aws-sdk-go-v2/config"
)

// Clients bundles the two AWS Bedrock clients the assistant needs: the
// control-plane client for guardrail management and the runtime client for
// model invocation and guardrail application.
type Clients struct {
	Control *awsbedrock.Client
	Runtime *bedrockruntime.Client
}

func LoadClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Clients{
		Control: awsbedrock.NewFromConfig(cfg),
		Runtime: bedrockruntime.NewFromConfig(cfg),
	}, nil
}
