package coordinator

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finassist/policy-agent/internal/llm"
)

// Synthesizer rewrites a specialist answer into the assistant's customer-facing
// voice. It never invents content: on any failure the raw answer is returned
// unchanged.
type Synthesizer struct {
	client llm.CompletionClient
	logger zerolog.Logger
}

func NewSynthesizer(client llm.CompletionClient, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		client: client,
		logger: logger,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, query, answer string) string {
	prompt := fmt.Sprintf(`You are the voice of a card issuer's assistant. Rewrite the draft answer
below in a clear, professional, customer-friendly tone.

Rules:
1. Preserve every fact in the draft. Add nothing.
2. Keep caveats and "I don't have that information" statements intact.
3. Return ONLY the rewritten answer, nothing else.

Customer question: "%s"

Draft answer:
%s`, query, answer)

	response, err := s.client.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to synthesize answer, returning raw answer")
		return answer
	}

	rewritten := strings.TrimSpace(response.Content)
	if rewritten == "" {
		return answer
	}
	return rewritten
}
