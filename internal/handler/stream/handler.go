package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	chatservice "github.com/dilzzzz/bagdag/internal/service/chat"
	"github.com/dilzzzz/bagdag/pkg/utils"
)

// Handler drives chat submissions over Server-Sent Events: one request is
// one submission, with fragments forwarded as they are folded into the
// transcript.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates a new stream handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// StreamResponse represents a streaming response chunk.
type StreamResponse struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest submits the user message for the session and relays
// the assistant's reply as SSE events.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
	})

	before, _, err := h.chatSvc.Transcript(sessionID)
	if err != nil {
		h.sendSSEError(w, flusher, err.Error())
		return err
	}

	err = h.chatSvc.Submit(ctx, sessionID, userMessage, func(delta string) {
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "delta",
			SessionID: sessionID,
			Content:   delta,
		})
	})
	switch {
	case errors.Is(err, chatservice.ErrBusy):
		h.sendSSEError(w, flusher, "another submission is in flight")
		return nil
	case err != nil:
		h.sendSSEError(w, flusher, err.Error())
		return err
	}

	// The submission may have been a silent no-op (empty input); only report
	// a reply when the transcript actually grew.
	after, _, err := h.chatSvc.Transcript(sessionID)
	if err != nil {
		h.sendSSEError(w, flusher, err.Error())
		return err
	}
	if len(after) > len(before) {
		last := after[len(after)-1]
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "message",
			SessionID: sessionID,
			Content:   last.Text,
		})
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "end",
		SessionID: sessionID,
		Finished:  true,
	})

	log.Printf("[stream] completed submission for session=%s", sessionID)
	return nil
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{
		Event: "error",
		Error: errorMsg,
	})
}
