package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Turn is one completed exchange within a session.
type Turn struct {
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	Blocked    bool      `json:"blocked"`
	Specialist string    `json:"specialist"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists conversation history keyed by session id. History is
// best-effort context: losing it degrades continuity, not correctness.
type Store interface {
	Append(ctx context.Context, sessionID string, turn Turn) error
	History(ctx context.Context, sessionID string) ([]Turn, error)
}

// NewSessionID mints an opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
