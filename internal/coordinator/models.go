package coordinator

import "github.com/finassist/policy-agent/internal/router"

// Result is the terminal outcome of routing one query.
type Result struct {
	Response   string
	Blocked    bool
	Reason     string
	Specialist router.Specialist
	SessionID  string
}

// blockNotice is appended to a stream whose already-emitted increments failed
// the output check. The increments cannot be unsent, so the notice follows
// them.
const blockNotice = "\n\n[Notice: parts of this response were withheld by content policy.]"
