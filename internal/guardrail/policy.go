package guardrail

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	blockedInputMessage  = "This input violates our safety policy."
	blockedOutputMessage = "This response violates our safety policy."
)

// CanonicalTopicName derives the machine name for a denied topic: lowercase,
// spaces become underscores, every other non-alphanumeric character is
// stripped.
func CanonicalTopicName(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '_' || unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildPolicySpec synthesizes the remote moderation policy for a profile:
// denied topics become denial rules, blocked words a denial list, PII
// categories anonymization rules, and the grounding flag a threshold filter.
func BuildPolicySpec(profile Profile) PolicySpec {
	spec := PolicySpec{
		Name:                 fmt.Sprintf("card-policy-guardrail-%s-%s", profile.ID, time.Now().Format("20060102150405")),
		Description:          fmt.Sprintf("Card policy assistant guardrail - %s", profile.ID),
		Words:                profile.BlockedWords,
		BlockedInputMessage:  blockedInputMessage,
		BlockedOutputMessage: blockedOutputMessage,
	}

	for _, topic := range profile.DeniedTopics {
		spec.Topics = append(spec.Topics, TopicRule{
			Name:       CanonicalTopicName(topic),
			Definition: topic,
			Examples:   []string{fmt.Sprintf("How to %s", strings.ToLower(topic))},
		})
	}

	for _, category := range profile.PIICategories {
		spec.PII = append(spec.PII, PIIRule{
			Category: category,
			Action:   "ANONYMIZE",
		})
	}

	if profile.GroundingRequired {
		threshold := profile.GroundingThreshold
		if threshold == 0 {
			threshold = 0.75
		}
		spec.GroundingThreshold = threshold
	}

	return spec
}
