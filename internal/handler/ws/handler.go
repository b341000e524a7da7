package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/dilzzzz/bagdag/internal/service/chat"
)

// Handler provides a bidirectional WebSocket chat transport as an
// alternative to the SSE endpoint. One connection serves one chat session;
// frames are processed strictly in order, so the orchestrator's
// single-flight guard is never tripped by a well-behaved client.
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// New creates the WebSocket handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the WebSocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type outboundFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			h.send(conn, outboundFrame{Type: "error", SessionID: sessionID, Error: "invalid frame"})
			continue
		}

		switch frame.Type {
		case "message":
			h.handleMessage(r, conn, sessionID, frame.Text)
		case "ping":
			h.send(conn, outboundFrame{Type: "pong", SessionID: sessionID})
		default:
			h.send(conn, outboundFrame{Type: "error", SessionID: sessionID, Error: "unknown frame type"})
		}
	}
}

func (h *Handler) handleMessage(r *http.Request, conn *websocket.Conn, sessionID, text string) {
	before, _, err := h.chatSvc.Transcript(sessionID)
	if err != nil {
		h.send(conn, outboundFrame{Type: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	err = h.chatSvc.Submit(r.Context(), sessionID, text, func(delta string) {
		h.send(conn, outboundFrame{Type: "delta", SessionID: sessionID, Content: delta})
	})
	if errors.Is(err, chatservice.ErrBusy) {
		h.send(conn, outboundFrame{Type: "error", SessionID: sessionID, Error: "another submission is in flight"})
		return
	}
	if err != nil {
		h.send(conn, outboundFrame{Type: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	after, _, err := h.chatSvc.Transcript(sessionID)
	if err != nil {
		h.send(conn, outboundFrame{Type: "error", SessionID: sessionID, Error: err.Error()})
		return
	}
	if len(after) > len(before) {
		last := after[len(after)-1]
		h.send(conn, outboundFrame{Type: "message", SessionID: sessionID, Content: last.Text})
	}
}

func (h *Handler) send(conn *websocket.Conn, frame outboundFrame) {
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
