package guardrail

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// LocalEnforcer is the fallback used when no remote moderation boundary is
// configured. It matches each denied topic as a case-insensitive substring of
// the text. It produces the same Verdict shape as the remote path.
type LocalEnforcer struct {
	registry *Registry
	logger   zerolog.Logger
}

func NewLocalEnforcer(registry *Registry, logger zerolog.Logger) *LocalEnforcer {
	return &LocalEnforcer{
		registry: registry,
		logger:   logger,
	}
}

func (e *LocalEnforcer) Evaluate(ctx context.Context, text string, profileID string, direction Direction) (Verdict, error) {
	profile, err := e.registry.Get(profileID)
	if err != nil {
		return Verdict{}, err
	}

	lowered := strings.ToLower(text)
	for _, topic := range profile.DeniedTopics {
		if strings.Contains(lowered, strings.ToLower(topic)) {
			e.logger.Info().
				Str("profile", profileID).
				Str("direction", string(direction)).
				Str("topic", topic).
				Msg("Text blocked by local guardrail")

			return Verdict{
				Action:         ActionIntervene,
				Reason:         fmt.Sprintf("matched denied topic: «%s»", topic),
				SubstituteText: fmt.Sprintf("I can't help with that: the topic «%s» is restricted.", topic),
			}, nil
		}
	}

	return Verdict{Action: ActionAllow}, nil
}
