package guardrail

import "context"

// TopicRule denies one topic. Name is the canonical machine name, Definition
// the human-readable topic.
type TopicRule struct {
	Name       string
	Definition string
	Examples   []string
}

type PIIRule struct {
	Category string
	Action   string // "ANONYMIZE" or "BLOCK"
}

// PolicySpec is everything the moderation boundary needs to create a policy
// remotely.
type PolicySpec struct {
	Name                 string
	Description          string
	Topics               []TopicRule
	Words                []string
	PII                  []PIIRule
	GroundingThreshold   float64 // 0 disables the grounding filter
	BlockedInputMessage  string
	BlockedOutputMessage string
}

// ModerationOutcome is the raw result of applying a remote policy to text.
type ModerationOutcome struct {
	Intervened bool
	Reason     string
	OutputText string
}

// ModerationAPI is the remote moderation boundary.
type ModerationAPI interface {
	Apply(ctx context.Context, remoteID, version string, direction Direction, text string) (*ModerationOutcome, error)
	CreatePolicy(ctx context.Context, spec PolicySpec) (string, error)
	PolicyVersion(ctx context.Context, remoteID string) (string, error)
}
