package llm

import (
	"context"
)

// CompletionClient is the interface for invoking a completion model.
// This allows mocking in tests without making real API calls.
type CompletionClient interface {
	Complete(ctx context.Context, request CompletionRequest) (*CompletionResponse, error)
	CompleteStream(ctx context.Context, request CompletionRequest, callback StreamFunc) (*CompletionResponse, error)
}
