package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finassist/policy-agent/internal/guardrail"
	"github.com/finassist/policy-agent/internal/router"
	"github.com/finassist/policy-agent/internal/session"
	"github.com/finassist/policy-agent/internal/specialist"
)

// Coordinator drives a query through the fixed pipeline: input check, route,
// specialist, output check, synthesis. Guardrail verdicts are terminal: an
// intervened input or output short-circuits everything downstream.
type Coordinator struct {
	enforcer       guardrail.Enforcer
	classifier     *router.Classifier
	policy         specialist.Specialist
	policyStream   specialist.Streamer
	recommendation specialist.Specialist
	synthesizer    *Synthesizer
	sessions       session.Store
	logger         zerolog.Logger
}

func New(
	enforcer guardrail.Enforcer,
	classifier *router.Classifier,
	policy specialist.Specialist,
	policyStream specialist.Streamer,
	recommendation specialist.Specialist,
	synthesizer *Synthesizer,
	sessions session.Store,
	logger zerolog.Logger,
) *Coordinator {
	return &Coordinator{
		enforcer:       enforcer,
		classifier:     classifier,
		policy:         policy,
		policyStream:   policyStream,
		recommendation: recommendation,
		synthesizer:    synthesizer,
		sessions:       sessions,
		logger:         logger,
	}
}

// Route handles one non-streaming query end to end.
func (c *Coordinator) Route(ctx context.Context, query, profileID, sessionID string) (*Result, error) {
	if sessionID == "" {
		sessionID = session.NewSessionID()
	}

	inputVerdict, err := c.enforcer.Evaluate(ctx, query, profileID, guardrail.DirectionInput)
	if err != nil {
		return nil, fmt.Errorf("input check: %w", err)
	}
	if inputVerdict.Intervened() {
		c.logger.Info().
			Str("profile", profileID).
			Str("reason", inputVerdict.Reason).
			Msg("Input blocked")
		result := &Result{
			Response:  inputVerdict.SubstituteText,
			Blocked:   true,
			Reason:    inputVerdict.Reason,
			SessionID: sessionID,
		}
		c.persist(ctx, sessionID, query, result)
		return result, nil
	}

	decision := c.classifier.Classify(query, profileID)
	c.logger.Info().
		Str("specialist", string(decision.Specialist)).
		Str("profile", decision.Profile).
		Msg("Query routed")

	answer, err := c.specialistFor(decision.Specialist).Answer(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s specialist: %w", decision.Specialist, err)
	}

	outputVerdict, err := c.enforcer.Evaluate(ctx, answer, profileID, guardrail.DirectionOutput)
	if err != nil {
		return nil, fmt.Errorf("output check: %w", err)
	}
	if outputVerdict.Intervened() {
		c.logger.Info().
			Str("profile", profileID).
			Str("reason", outputVerdict.Reason).
			Msg("Output blocked")
		result := &Result{
			Response:   outputVerdict.SubstituteText,
			Blocked:    true,
			Reason:     outputVerdict.Reason,
			Specialist: decision.Specialist,
			SessionID:  sessionID,
		}
		c.persist(ctx, sessionID, query, result)
		return result, nil
	}

	// Recommendation answers stay verbatim so the rule engine remains
	// reproducible end to end.
	if decision.Specialist == router.SpecialistPolicy {
		answer = c.synthesizer.Synthesize(ctx, query, answer)
	}

	result := &Result{
		Response:   answer,
		Specialist: decision.Specialist,
		SessionID:  sessionID,
	}
	c.persist(ctx, sessionID, query, result)
	return result, nil
}

// RouteStream handles one streaming query. Answer increments are forwarded to
// emit as they arrive; the output check runs on the concatenated text only
// after the stream is exhausted, and an intervened verdict appends a notice
// rather than retracting what was already sent. A callback error or context
// cancellation aborts without the output check or persistence.
func (c *Coordinator) RouteStream(ctx context.Context, query, profileID, sessionID string, emit func(chunk string) error) (*Result, error) {
	if sessionID == "" {
		sessionID = session.NewSessionID()
	}

	inputVerdict, err := c.enforcer.Evaluate(ctx, query, profileID, guardrail.DirectionInput)
	if err != nil {
		return nil, fmt.Errorf("input check: %w", err)
	}
	if inputVerdict.Intervened() {
		c.logger.Info().
			Str("profile", profileID).
			Str("reason", inputVerdict.Reason).
			Msg("Input blocked")
		result := &Result{
			Response:  inputVerdict.SubstituteText,
			Blocked:   true,
			Reason:    inputVerdict.Reason,
			SessionID: sessionID,
		}
		c.persist(ctx, sessionID, query, result)
		return result, nil
	}

	decision := c.classifier.Classify(query, profileID)
	c.logger.Info().
		Str("specialist", string(decision.Specialist)).
		Str("profile", decision.Profile).
		Msg("Query routed for streaming")

	var full string
	if decision.Specialist == router.SpecialistPolicy {
		full, err = c.policyStream.AnswerStream(ctx, query, emit)
		if err != nil {
			return nil, fmt.Errorf("policy specialist stream: %w", err)
		}
	} else {
		// The rule engine produces its answer whole; stream it as a
		// single increment.
		full, err = c.recommendation.Answer(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("recommendation specialist: %w", err)
		}
		if err := emit(full); err != nil {
			return nil, fmt.Errorf("emit recommendation: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputVerdict, err := c.enforcer.Evaluate(ctx, full, profileID, guardrail.DirectionOutput)
	if err != nil {
		return nil, fmt.Errorf("output check: %w", err)
	}

	result := &Result{
		Response:   full,
		Specialist: decision.Specialist,
		SessionID:  sessionID,
	}
	if outputVerdict.Intervened() {
		c.logger.Info().
			Str("profile", profileID).
			Str("reason", outputVerdict.Reason).
			Msg("Streamed output blocked after the fact")
		if err := emit(blockNotice); err != nil {
			return nil, fmt.Errorf("emit block notice: %w", err)
		}
		result.Response = full + blockNotice
		result.Blocked = true
		result.Reason = outputVerdict.Reason
	}

	c.persist(ctx, sessionID, query, result)
	return result, nil
}

func (c *Coordinator) specialistFor(which router.Specialist) specialist.Specialist {
	if which == router.SpecialistRecommendation {
		return c.recommendation
	}
	return c.policy
}

// persist is best-effort: a history write failure never fails the request.
func (c *Coordinator) persist(ctx context.Context, sessionID, query string, result *Result) {
	turn := session.Turn{
		Query:      query,
		Response:   result.Response,
		Blocked:    result.Blocked,
		Specialist: string(result.Specialist),
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.sessions.Append(ctx, sessionID, turn); err != nil {
		c.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to persist turn")
	}
}
