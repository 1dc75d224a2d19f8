package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finassist/policy-agent/internal/evidence"
	"github.com/finassist/policy-agent/internal/llm"
)

const policyTopK = 3

const policyPromptTemplate = `You are a financial policy assistant for a card issuer. Answer the
question using only the context below. If the context does not cover the
question, say you don't have that information. Do not speculate.

Policy context:
%s

FAQ context:
%s

Question: %s

Answer:`

// PolicySpecialist answers governance and policy questions by retrieving
// evidence from the policy and FAQ corpora and asking the model to answer
// grounded in that context.
type PolicySpecialist struct {
	policyStore *evidence.Store
	faqStore    *evidence.Store
	client      llm.CompletionClient
	logger      zerolog.Logger
}

func NewPolicySpecialist(policyStore, faqStore *evidence.Store, client llm.CompletionClient, logger zerolog.Logger) *PolicySpecialist {
	return &PolicySpecialist{
		policyStore: policyStore,
		faqStore:    faqStore,
		client:      client,
		logger:      logger,
	}
}

func (s *PolicySpecialist) Answer(ctx context.Context, query string) (string, error) {
	req := s.buildRequest(ctx, query)

	resp, err := s.client.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("policy completion: %w", err)
	}
	return resp.Content, nil
}

// AnswerStream emits the model answer chunk by chunk through emit and returns
// the full concatenated text once the stream is exhausted.
func (s *PolicySpecialist) AnswerStream(ctx context.Context, query string, emit func(chunk string) error) (string, error) {
	req := s.buildRequest(ctx, query)

	var full strings.Builder
	_, err := s.client.CompleteStream(ctx, req, func(chunk string) error {
		full.WriteString(chunk)
		return emit(chunk)
	})
	if err != nil {
		return "", fmt.Errorf("policy streaming completion: %w", err)
	}
	return full.String(), nil
}

func (s *PolicySpecialist) buildRequest(ctx context.Context, query string) llm.CompletionRequest {
	policyContext := formatMatches(s.policyStore.Search(ctx, query, policyTopK))
	faqContext := formatMatches(s.faqStore.Search(ctx, query, policyTopK))

	s.logger.Debug().
		Int("policy_context_len", len(policyContext)).
		Int("faq_context_len", len(faqContext)).
		Msg("Built policy prompt context")

	return llm.CompletionRequest{
		Prompt:      fmt.Sprintf(policyPromptTemplate, policyContext, faqContext, query),
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

func formatMatches(matches []evidence.Match) string {
	if len(matches) == 0 {
		return "(no relevant passages found)"
	}

	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s", m.Document.Source, m.Document.Content)
	}
	return b.String()
}
