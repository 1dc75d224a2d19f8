package guardrail

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RemoteEnforcer evaluates text against a remotely managed moderation policy.
// It owns the lazy create-or-load lifecycle of the per-profile policy
// identity: memory cache first, then the identity store, then remote
// creation, at most once per profile per process.
type RemoteEnforcer struct {
	registry   *Registry
	moderation ModerationAPI
	identities IdentityStore
	failClosed bool
	logger     zerolog.Logger

	mu     sync.Mutex
	cache  map[string]*Identity
	failed map[string]error
}

type RemoteEnforcerOption func(*RemoteEnforcer)

// WithFailClosed makes transport errors intervene instead of failing open.
// Default is fail-open: a moderation outage lets text pass.
func WithFailClosed() RemoteEnforcerOption {
	return func(e *RemoteEnforcer) {
		e.failClosed = true
	}
}

func NewRemoteEnforcer(
	registry *Registry,
	moderation ModerationAPI,
	identities IdentityStore,
	logger zerolog.Logger,
	opts ...RemoteEnforcerOption,
) *RemoteEnforcer {
	enforcer := &RemoteEnforcer{
		registry:   registry,
		moderation: moderation,
		identities: identities,
		logger:     logger,
		cache:      make(map[string]*Identity),
		failed:     make(map[string]error),
	}
	for _, opt := range opts {
		opt(enforcer)
	}
	return enforcer
}

func (e *RemoteEnforcer) Evaluate(ctx context.Context, text string, profileID string, direction Direction) (Verdict, error) {
	identity, err := e.resolveIdentity(ctx, profileID)
	if err != nil {
		return Verdict{}, err
	}

	outcome, err := e.moderation.Apply(ctx, identity.RemoteID, identity.Version, direction, text)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("profile", profileID).
			Str("direction", string(direction)).
			Msg("Failed to apply guardrail")

		if e.failClosed {
			return Verdict{
				Action:         ActionIntervene,
				Reason:         "moderation unavailable",
				SubstituteText: blockedMessageFor(direction),
			}, nil
		}

		// Fail-open: the caller receives the original text unmodified
		return Verdict{
			Action:         ActionError,
			Reason:         err.Error(),
			SubstituteText: text,
		}, nil
	}

	if outcome.Intervened {
		substitute := outcome.OutputText
		if substitute == "" {
			substitute = blockedMessageFor(direction)
		}
		return Verdict{
			Action:         ActionIntervene,
			Reason:         outcome.Reason,
			SubstituteText: substitute,
		}, nil
	}

	return Verdict{Action: ActionAllow}, nil
}

// resolveIdentity returns the profile's policy identity, creating and
// persisting one on first use. A creation failure is recorded and makes the
// profile unusable for the rest of the process lifetime; callers recover by
// restarting or rotating the cached identity.
func (e *RemoteEnforcer) resolveIdentity(ctx context.Context, profileID string) (*Identity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if identity, ok := e.cache[profileID]; ok {
		return identity, nil
	}
	if err, ok := e.failed[profileID]; ok {
		return nil, err
	}

	profile, err := e.registry.Get(profileID)
	if err != nil {
		return nil, err
	}

	identity, err := e.identities.Load(profileID)
	if err != nil {
		e.logger.Warn().Err(err).Str("profile", profileID).Msg("Failed to load cached guardrail identity")
	}
	if identity != nil {
		e.logger.Info().
			Str("profile", profileID).
			Str("guardrail_id", identity.RemoteID).
			Str("version", identity.Version).
			Msg("Loaded guardrail identity")
		e.cache[profileID] = identity
		return identity, nil
	}

	identity, err = e.createIdentity(ctx, profile)
	if err != nil {
		wrapped := fmt.Errorf("guardrail policy creation failed for profile %s: %w", profileID, err)
		e.failed[profileID] = wrapped
		return nil, wrapped
	}

	e.cache[profileID] = identity
	return identity, nil
}

func (e *RemoteEnforcer) createIdentity(ctx context.Context, profile Profile) (*Identity, error) {
	if len(profile.BlockedWords) == 0 {
		// The moderation service rejects empty word lists
		return nil, fmt.Errorf("profile %s has no blocked words", profile.ID)
	}

	spec := BuildPolicySpec(profile)

	e.logger.Info().Str("profile", profile.ID).Str("name", spec.Name).Msg("Creating guardrail policy")

	remoteID, err := e.moderation.CreatePolicy(ctx, spec)
	if err != nil {
		return nil, err
	}

	version, err := e.moderation.PolicyVersion(ctx, remoteID)
	if err != nil {
		return nil, fmt.Errorf("created policy %s but failed to read its version: %w", remoteID, err)
	}

	identity := &Identity{
		RemoteID:  remoteID,
		Version:   version,
		ProfileID: profile.ID,
		CreatedAt: time.Now(),
	}

	// Last writer wins if two processes raced on creation; duplication on
	// the remote side is acceptable, a stale cache file is not.
	if err := e.identities.Save(identity); err != nil {
		e.logger.Warn().Err(err).Str("profile", profile.ID).Msg("Failed to persist guardrail identity")
	}

	e.logger.Info().
		Str("profile", profile.ID).
		Str("guardrail_id", identity.RemoteID).
		Str("version", identity.Version).
		Msg("Created guardrail policy")

	return identity, nil
}

// Rotate discards the cached identity for a profile so the next evaluation
// recreates the remote policy.
func (e *RemoteEnforcer) Rotate(profileID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.cache, profileID)
	delete(e.failed, profileID)
	return e.identities.Delete(profileID)
}

func blockedMessageFor(direction Direction) string {
	if direction == DirectionInput {
		return blockedInputMessage
	}
	return blockedOutputMessage
}
