package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"

	"github.com/finassist/policy-agent/internal/coordinator"
	"github.com/finassist/policy-agent/internal/guardrail"
	"github.com/finassist/policy-agent/internal/middleware"
	"github.com/finassist/policy-agent/internal/session"
)

type Handler struct {
	coordinator *coordinator.Coordinator
	profiles    *guardrail.Registry
}

func NewHandler(coord *coordinator.Coordinator, profiles *guardrail.Registry) *Handler {
	return &Handler{
		coordinator: coord,
		profiles:    profiles,
	}
}

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(req *restful.Request, resp *restful.Response) {
	var chatRequest ChatRequest

	if err := req.ReadEntity(&chatRequest); err != nil {
		log.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	chatRequest.SetDefaults()
	if err := chatRequest.Validate(); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if _, err := h.profiles.Get(chatRequest.Profile); err != nil {
		middleware.HandleError(resp, middleware.ErrInvalidProfile, http.StatusBadRequest)
		return
	}

	log.Info().
		Str("profile", chatRequest.Profile).
		Str("session_id", chatRequest.SessionID).
		Msg("Process chat")

	ctx := req.Request.Context()

	result, err := h.coordinator.Route(ctx, chatRequest.Query, chatRequest.Profile, chatRequest.SessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to route query")
		status := http.StatusInternalServerError
		if errors.Is(err, guardrail.ErrUnknownProfile) {
			status = http.StatusBadRequest
		}
		middleware.HandleError(resp, err, status)
		return
	}

	chatResponse := ChatResponse{
		Response:   result.Response,
		Blocked:    result.Blocked,
		Reason:     result.Reason,
		Specialist: string(result.Specialist),
		SessionID:  result.SessionID,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, chatResponse)
}

// ChatStream handles POST /api/v1/chat/stream
func (h *Handler) ChatStream(req *restful.Request, resp *restful.Response) {
	var chatRequest ChatRequest

	if err := req.ReadEntity(&chatRequest); err != nil {
		log.Error().Err(err).Msg("Unable to parse chat request")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	chatRequest.SetDefaults()
	if err := chatRequest.Validate(); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if _, err := h.profiles.Get(chatRequest.Profile); err != nil {
		middleware.HandleError(resp, middleware.ErrInvalidProfile, http.StatusBadRequest)
		return
	}

	log.Info().
		Str("profile", chatRequest.Profile).
		Str("session_id", chatRequest.SessionID).
		Msg("Process chat stream")

	ctx := req.Request.Context()

	resp.AddHeader("Content-Type", "text/event-stream")
	resp.AddHeader("Cache-Control", "no-cache")
	resp.AddHeader("Connection", "keep-alive")
	resp.AddHeader("X-Accel-Buffering", "no")

	writer := resp.ResponseWriter
	flusher, ok := writer.(http.Flusher)
	if !ok {
		middleware.HandleError(resp, fmt.Errorf("streaming not supported"), http.StatusInternalServerError)
		return
	}

	emit := func(event SSEEvent) {
		if formatted, err := event.Format(); err == nil {
			fmt.Fprint(writer, formatted)
			flusher.Flush()
		}
	}

	// Mint the session id up front so the start event can carry it.
	if chatRequest.SessionID == "" {
		chatRequest.SessionID = session.NewSessionID()
	}
	emit(SSEEvent{Event: "start", Data: StreamStartEvent{
		SessionID: chatRequest.SessionID,
		Profile:   chatRequest.Profile,
	}})

	result, err := h.coordinator.RouteStream(ctx, chatRequest.Query, chatRequest.Profile, chatRequest.SessionID,
		func(chunk string) error {
			emit(SSEEvent{Event: "chunk", Data: StreamChunkEvent{Text: chunk}})
			return nil
		})
	if err != nil {
		emit(SSEEvent{Event: "error", Data: StreamErrorEvent{Error: err.Error()}})
		return
	}

	// An input block produces no chunks, so the substitute message goes out
	// as a dedicated event.
	if result.Blocked && result.Specialist == "" {
		emit(SSEEvent{Event: "blocked", Data: StreamBlockedEvent{
			Reason:  result.Reason,
			Message: result.Response,
		}})
	}

	emit(SSEEvent{Event: "done", Data: StreamDoneEvent{
		Blocked:    result.Blocked,
		Specialist: string(result.Specialist),
		SessionID:  result.SessionID,
	}})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
