package guardrail

import "context"

type Direction string

const (
	DirectionInput  Direction = "INPUT"
	DirectionOutput Direction = "OUTPUT"
)

type Action string

const (
	ActionAllow     Action = "ALLOW"
	ActionIntervene Action = "INTERVENE"
	ActionError     Action = "ERROR"
)

// Verdict is the outcome of one guardrail evaluation. It is consumed
// immediately by the caller and never persisted.
type Verdict struct {
	Action Action
	Reason string
	// SubstituteText is the text the caller should show instead of the
	// original. On INTERVENE it carries the blocked-message; on ERROR it
	// carries the original text unmodified so fail-open callers can pass
	// it through.
	SubstituteText string
}

func (v Verdict) Intervened() bool {
	return v.Action == ActionIntervene
}

// Enforcer decides whether text may pass for a given profile and direction.
// The remote and local implementations produce the same Verdict shape so
// callers are agnostic to which backend is active.
type Enforcer interface {
	Evaluate(ctx context.Context, text string, profileID string, direction Direction) (Verdict, error)
}
