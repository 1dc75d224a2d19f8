package api

import (
	"encoding/json"
	"fmt"

	"github.com/finassist/policy-agent/internal/guardrail"
	"github.com/finassist/policy-agent/internal/middleware"
)

const maxQueryLength = 4000

type ChatRequest struct {
	Query     string `json:"query" description:"The user's question"`
	Profile   string `json:"profile,omitempty" description:"Enforcement profile (default: external)"`
	SessionID string `json:"session_id,omitempty" description:"Session identifier to continue a conversation"`
}

type ChatResponse struct {
	Response   string `json:"response" description:"The assistant's answer"`
	Blocked    bool   `json:"blocked" description:"Whether a guardrail intervened"`
	Reason     string `json:"reason,omitempty" description:"Why the guardrail intervened"`
	Specialist string `json:"specialist,omitempty" description:"Which specialist answered"`
	SessionID  string `json:"session_id" description:"Session identifier for follow-up questions"`
}

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

func (r *ChatRequest) Validate() error {
	if r.Query == "" {
		return middleware.ErrEmptyQuery
	}
	if len(r.Query) > maxQueryLength {
		return middleware.ErrQueryTooLong
	}
	return nil
}

func (r *ChatRequest) SetDefaults() {
	if r.Profile == "" {
		r.Profile = guardrail.ProfileExternal
	}
}

type SSEEvent struct {
	Event string      `json:"-"`
	Data  interface{} `json:"-"`
}

// SSE event data structures
type StreamStartEvent struct {
	SessionID string `json:"session_id"`
	Profile   string `json:"profile"`
}

type StreamChunkEvent struct {
	Text string `json:"text"`
}

type StreamBlockedEvent struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type StreamDoneEvent struct {
	Blocked    bool   `json:"blocked"`
	Specialist string `json:"specialist"`
	SessionID  string `json:"session_id"`
}

type StreamErrorEvent struct {
	Error string `json:"error"`
}

func (e SSEEvent) Format() (string, error) {
	jsonData, err := json.Marshal(e.Data)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Event, string(jsonData)), nil
}
